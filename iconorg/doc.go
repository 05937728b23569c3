// Package iconorg sorts a tree of icon images into unique icons and groups of
// near-duplicates.
//
// A run proceeds in one linear pass:
//
//  1. Discovery: every file under the input root with an image extension.
//  2. Exact grouping: files are keyed by MD5 digest; the first-discovered file
//     of each digest represents it and the rest are counted as duplicates.
//  3. Fingerprinting: each representative is decoded and reduced to a 64-bit
//     DCT perceptual hash (goimagehash), written as 16 hex digits.
//     Representatives with equal fingerprints form a fingerprint group.
//  4. Clustering: a single greedy pass over the fingerprint groups in
//     first-discovery order. Each unconsumed group seeds a cluster and absorbs
//     every other unconsumed group within the threshold of the seed. By
//     default the distance is the number of differing hex characters, not the
//     number of differing bits.
//  5. Materialization: clusters of two or more files are copied to
//     similar_groups/group_N, single files to unique_icons.
//
// Digesting and fingerprinting may run on several workers; results are put
// back in discovery order before clustering, which is always sequential.
//
// Files that cannot be read or decoded are logged, counted as excluded and
// left out of the output. This includes .svg files, which are on the
// extension allow-list but have no raster decoder.
package iconorg
