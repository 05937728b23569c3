// Package cmd provides the command-line interface implementation for icon-organizer.
//
// This package contains all the subcommand implementations for the CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - organize: The full deduplicate, cluster and copy pipeline
//   - scan: Image counting by extension
//   - hash: MD5 and perceptual hashes of individual files
//   - compare: Fingerprint distance between two images
//   - version: Build information
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Flags are parsed here and turned into
// iconorg.Options; the pipeline itself lives in the iconorg package.
package cmd
