package cmd

import (
	"github.com/dendrascience/icon-organizer/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the icon-organizer CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "icon-organizer",
		Short: "icon-organizer - Sort an icon collection into unique icons and groups of similar icons",
		Long: `icon-organizer scans a directory tree for image files and sorts them.

Byte-identical files are collapsed to a single representative. The remaining
images are compared by perceptual hash, and images whose hashes differ by at
most the similarity threshold are copied together into a numbered group.
Everything else is copied into a flat directory of unique icons.

Use subcommands to perform different operations:
  - organize: Run the full pipeline and build the output tree
  - scan: Count image files in a directory tree
  - hash: Print content and perceptual hashes of files
  - compare: Show the distance between two images`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}

	groupOrganizing := "organizing"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupOrganizing,
		Title: "Organizing",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	organizeCmd := NewOrganizeCmd()
	scanCmd := NewScanCmd()
	hashCmd := NewHashCmd()
	compareCmd := NewCompareCmd()
	versionCmd := NewVersionCmd()

	organizeCmd.GroupID = groupOrganizing
	scanCmd.GroupID = groupUtilities
	hashCmd.GroupID = groupUtilities
	compareCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
