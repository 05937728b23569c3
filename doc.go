// Package main provides the icon-organizer command-line interface.
//
// icon-organizer sorts a collection of image files into an output tree. Exact
// duplicates are detected by MD5 and collapsed to one representative; the
// representatives are then clustered by perceptual hash, and visually similar
// images are copied together into numbered groups while everything else is
// copied into a flat directory of unique icons.
//
// The main binary supports multiple subcommands:
//   - organize: Run the full pipeline on an input directory
//   - scan: Count image files by extension
//   - hash: Print the MD5 and perceptual hash of files
//   - compare: Show the fingerprint distance between two images
//   - version: Print build information
package main
