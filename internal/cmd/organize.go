package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dendrascience/icon-organizer/iconorg"
	"github.com/dendrascience/icon-organizer/util"
	"github.com/spf13/cobra"
)

// NewOrganizeCmd creates and returns the organize subcommand.
// It runs discovery, deduplication, clustering and the copy into the output tree.
func NewOrganizeCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		threshold  int
		metric     string
		workers    int
		verbose    bool
		dryRun     bool
		report     bool
		progress   bool
		skipSVG    bool
		list       bool
		color      bool
	)

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Sort icons into unique icons and groups of similar icons",
		Long: `Scan the input tree for images and build an organized copy of it.

Exact duplicates (identical MD5) are reduced to the first file found. The
survivors are perceptually hashed; images whose hashes are within the
threshold of a group's seed are copied to <output>/similar_groups/group_N,
and the rest to <output>/unique_icons. Source files are never modified.

Files that cannot be read or decoded are logged and left out of the output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := iconorg.DefaultOptions()
			opts.InputRoot = inputPath
			opts.OutputRoot = outputPath
			opts.Threshold = threshold
			opts.Metric = iconorg.Metric(metric)
			opts.Workers = workers
			opts.DryRun = dryRun
			opts.Report = report
			opts.Progress = progress
			opts.Logger = iconorg.NewLogger(cmd.ErrOrStderr(), verbose)
			opts.Stdout = cmd.OutOrStdout()
			opts.ProgressOut = cmd.ErrOrStderr()
			if skipSVG {
				opts.Extensions = util.WithoutExtension(util.ImageExtensions, ".svg")
			}
			return runOrganize(cmd.Context(), opts, list, color)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Directory to scan for images (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Directory to write the organized tree to (required)")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", iconorg.DefaultThreshold, "Maximum fingerprint distance for two images to be grouped")
	cmd.Flags().StringVar(&metric, "metric", string(iconorg.MetricHex), "Fingerprint distance: hex (differing hex digits) or bits (differing bits)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Number of files hashed concurrently")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without copying anything")
	cmd.Flags().BoolVar(&report, "report", false, "Write "+iconorg.ReportFileName+" to the output directory")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show progress bars while hashing")
	cmd.Flags().BoolVar(&skipSVG, "skip-svg", false, "Do not pick up .svg files")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every similar group and its members after the run")
	cmd.Flags().BoolVar(&color, "color", false, "Colour group listings by seed fingerprint")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runOrganize(ctx context.Context, opts iconorg.Options, list, color bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if pathsOverlap(opts.InputRoot, opts.OutputRoot) && opts.Logger != nil {
		opts.Logger.WithField("output", opts.OutputRoot).Debug("output overlaps input; previous output will not be rescanned")
	}
	if opts.DryRun {
		fmt.Fprintln(opts.Stdout, "DRY RUN - no files will be copied")
	}

	res, err := iconorg.Run(ctx, opts)
	if err != nil {
		return err
	}

	if res.Summary.Excluded > 0 || res.Summary.CopyFailures > 0 {
		fmt.Fprintf(opts.Stdout, "Skipped %d files that could not be processed, %d copies failed\n",
			res.Summary.Excluded, res.Summary.CopyFailures)
	}
	if list {
		printGroups(opts.Stdout, res, color)
	}
	if !opts.DryRun {
		fmt.Fprintf(opts.Stdout, "Organized icons written to %s\n", opts.OutputRoot)
	}
	return nil
}

// printGroups lists each similar group with its members. In a dry run the
// source paths are listed, otherwise the copied destinations.
func printGroups(w io.Writer, res *iconorg.Result, color bool) {
	for i, c := range res.Clusters.Clusters {
		header := fmt.Sprintf("%s (%d icons, seed %s)", iconorg.GroupDir(i+1), len(c.Paths), c.Seed)
		if color {
			header = fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", util.ColorTagFromHash(c.Seed), header)
		}
		fmt.Fprintln(w, header)

		members := c.Paths
		if res.Placement != nil && i < len(res.Placement.Groups) {
			members = members[:0:0]
			for _, m := range res.Placement.Groups[i].Members {
				members = append(members, m.Destination)
			}
		}
		for _, m := range members {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
}

// pathsOverlap reports whether one path is the same as or nested inside the other.
func pathsOverlap(path1, path2 string) bool {
	return util.IsWithin(path1, path2) || util.IsWithin(path2, path1)
}
