package cmd

import (
	"fmt"

	"github.com/dendrascience/icon-organizer/iconorg"
	"github.com/spf13/cobra"
)

// NewHashCmd creates and returns the hash subcommand.
func NewHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash FILE...",
		Short: "Print the MD5 digest and perceptual hash of files",
		Long: `Print the MD5 digest and perceptual hash organize computes for each file.

Output has one line per file: MD5, perceptual hash, path. Files that
cannot be read or decoded are reported on stderr and the command exits
non-zero once all files have been tried.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runHash,
	}
}

func runHash(cmd *cobra.Command, args []string) error {
	var (
		digester iconorg.MD5Digester
		hasher   iconorg.PerceptualHasher
		failed   int
	)
	for _, path := range args {
		sum, err := digester.Digest(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		fp, err := hasher.Fingerprint(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", sum, fp, path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be hashed", failed, len(args))
	}
	return nil
}
