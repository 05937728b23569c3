// Package util provides the file-level building blocks for icon-organizer.
//
// This package contains the pieces that touch the filesystem directly and carry
// no knowledge of images: content digests, discovery of candidate files, and
// collision-safe copying into the output tree.
//
// Key Components:
//
// Content Digests:
//   - MD5 digests streamed in fixed-size chunks (ChunkSize = 4096)
//   - Lowercase hex encoding suitable for map keys and reports
//   - Stable xterm colour tags derived from a hash via colorhash
//
// Discovery:
//   - Lexical, depth-first walk of an input root
//   - Case-insensitive extension allow-list (ImageExtensions)
//   - Excluded directories and per-entry error callbacks
//
// Copying:
//   - Byte-for-byte copies preserving permission bits and modification time
//   - Suffix-based renaming on name collisions, never overwriting
//   - Removal of partially written files on failure
//
// Everything here is stateless; callers own all data structures.
package util
