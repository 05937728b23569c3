package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dendrascience/icon-organizer/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// NewScanCmd creates and returns the scan subcommand.
// It counts the image files organize would pick up, by extension.
func NewScanCmd() *cobra.Command {
	var (
		path         string
		showProgress bool
		skipSVG      bool
	)

	cmd := &cobra.Command{
		Use:   "scan [PATH]",
		Short: "Count image files in a directory tree",
		Long: `Count the image files in a directory tree, grouped by extension.

This walks the tree the same way organize does and reports how many
files of each recognized extension it finds and their total size.
Useful for a quick look at a collection before organizing it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			exts := util.ImageExtensions
			if skipSVG {
				exts = util.WithoutExtension(exts, ".svg")
			}
			return runScan(cmd, path, exts, showProgress)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to scan for images")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar while sizing files")
	cmd.Flags().BoolVar(&skipSVG, "skip-svg", false, "Do not count .svg files")

	return cmd
}

type extStats struct {
	count int
	bytes int64
}

func runScan(cmd *cobra.Command, path string, exts []string, showProgress bool) error {
	out := cmd.OutOrStdout()
	if err := util.CheckInputRoot(path); err != nil {
		return err
	}
	images, err := util.FindImages(cmd.Context(), path, util.FindOptions{
		Extensions: exts,
		OnError: func(p string, err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", p, err)
		},
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}

	var bar *progressbar.ProgressBar
	if showProgress && len(images) > 0 {
		bar = progressbar.NewOptions(len(images),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Sizing"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(cmd.ErrOrStderr()) }),
		)
	}

	stats := map[string]*extStats{}
	for _, img := range images {
		ext := strings.ToLower(filepath.Ext(img))
		s, ok := stats[ext]
		if !ok {
			s = &extStats{}
			stats[ext] = s
		}
		s.count++
		if info, err := os.Stat(img); err == nil {
			s.bytes += info.Size()
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	printScan(out, stats, len(images))
	return nil
}

func printScan(w io.Writer, stats map[string]*extStats, total int) {
	exts := make([]string, 0, len(stats))
	for ext := range stats {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	for _, ext := range exts {
		fmt.Fprintf(w, "%-6s %8d files %12d bytes\n", ext, stats[ext].count, stats[ext].bytes)
	}
	fmt.Fprintf(w, "Total images: %d\n", total)
}
