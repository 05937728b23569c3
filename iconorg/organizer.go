package iconorg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/icon-organizer/util"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Summary holds the final counts of a run. Every discovered image is counted
// exactly once across UniqueIcons, ClusteredImages, Duplicates and Excluded.
type Summary struct {
	TotalImages     int `json:"total_images"`
	Duplicates      int `json:"duplicates"`
	UniqueIcons     int `json:"unique_icons"`
	SimilarGroups   int `json:"similar_groups"`
	ClusteredImages int `json:"clustered_images"`
	Excluded        int `json:"excluded"`
	CopyFailures    int `json:"copy_failures"`
}

// Result is everything a run computed.
type Result struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Options    Options
	Summary    Summary

	Images    []string
	Digests   DigestResult
	Groups    []FingerprintGroup
	Clusters  ClusterResult
	Placement *MaterializeResult

	// Failures from every stage, in stage order.
	Failures []*FileError
}

// Run executes the whole pipeline: discover, digest, fingerprint, cluster
// and, unless DryRun is set, copy into the output tree. Per-file failures are
// logged and collected in the Result. An error is returned only for invalid
// options, an unusable input or output root, or cancellation; an invalid
// input root leaves the filesystem untouched.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dist, err := opts.Metric.Distance()
	if err != nil {
		return nil, err
	}
	log := opts.Logger

	res := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Options:   opts,
	}
	log.WithFields(logrus.Fields{
		"run_id":    res.RunID,
		"input":     opts.InputRoot,
		"output":    opts.OutputRoot,
		"threshold": opts.Threshold,
		"metric":    opts.Metric,
		"workers":   opts.Workers,
	}).Debug("starting run")

	if err := util.CheckInputRoot(opts.InputRoot); err != nil {
		return nil, err
	}

	images, err := util.FindImages(ctx, opts.InputRoot, util.FindOptions{
		Extensions: opts.Extensions,
		Exclude:    excludedDirs(opts.InputRoot, opts.OutputRoot),
		OnError: func(path string, err error) {
			log.WithField("path", path).WithError(err).Warn("skipping unreadable entry")
		},
	})
	if err != nil {
		return nil, err
	}
	res.Images = images
	res.Summary.TotalImages = len(images)
	fmt.Fprintf(opts.Stdout, "Found %d image files\n", len(images))

	bar := newBar(opts.Progress, opts.ProgressOut, len(images), "Digesting")
	res.Digests, err = GroupByDigest(ctx, images, opts.Digester, opts.Workers, bar)
	if err != nil {
		return nil, err
	}
	res.addFailures(log, res.Digests.Failures)
	res.Summary.Duplicates = res.Digests.Duplicates
	fmt.Fprintf(opts.Stdout, "Found %d exact duplicates (identical MD5)\n", res.Digests.Duplicates)

	reps := res.Digests.Representatives
	bar = newBar(opts.Progress, opts.ProgressOut, len(reps), "Fingerprinting")
	fps, err := GroupByFingerprint(ctx, reps, opts.Fingerprinter, opts.Workers, bar)
	if err != nil {
		return nil, err
	}
	res.addFailures(log, fps.Failures)
	res.Groups = fps.Groups

	res.Clusters = ClusterGroups(fps.Groups, opts.Threshold, dist)
	res.Summary.UniqueIcons = len(res.Clusters.Unique)
	res.Summary.SimilarGroups = len(res.Clusters.Clusters)
	res.Summary.ClusteredImages = res.Clusters.ClusteredPaths()
	res.Summary.Excluded = len(res.Digests.Failures) + len(fps.Failures)
	fmt.Fprintf(opts.Stdout, "Found %d unique icons\n", res.Summary.UniqueIcons)
	fmt.Fprintf(opts.Stdout, "Found %d groups of similar icons\n", res.Summary.SimilarGroups)
	log.WithFields(logrus.Fields{
		"fingerprints": len(fps.Groups),
		"clusters":     res.Summary.SimilarGroups,
		"unique":       res.Summary.UniqueIcons,
	}).Debug("clustering complete")

	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputRoot, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", util.ErrOutputRoot, opts.OutputRoot, err)
		}
		res.Placement, err = Materialize(ctx, opts.OutputRoot, res.Clusters.Unique, res.Clusters.Clusters)
		if res.Placement != nil {
			res.addFailures(log, res.Placement.Failures)
			res.Summary.CopyFailures = len(res.Placement.Failures)
		}
		if err != nil {
			return nil, err
		}
	}
	res.FinishedAt = time.Now()

	if opts.Report && !opts.DryRun {
		path := filepath.Join(opts.OutputRoot, ReportFileName)
		if err := util.WriteJSONFile(path, BuildReport(res)); err != nil {
			log.WithField("path", path).WithError(err).Warn("failed to write report")
		}
	}
	return res, nil
}

func (r *Result) addFailures(log *logrus.Logger, failures []*FileError) {
	for _, f := range failures {
		log.WithFields(logrus.Fields{
			"path":  f.Path,
			"stage": f.Stage,
			"kind":  f.Kind.String(),
		}).WithError(f.Err).Warn("skipping file")
	}
	r.Failures = append(r.Failures, failures...)
}

// excludedDirs returns the output root when it lies inside the input root,
// so earlier results are not rescanned. When both are the same directory only
// the two output subdirectories are excluded.
func excludedDirs(input, output string) []string {
	if !util.IsWithin(input, output) {
		return nil
	}
	if util.IsWithin(output, input) {
		return []string{
			filepath.Join(output, UniqueDirName),
			filepath.Join(output, SimilarDirName),
		}
	}
	return []string{output}
}
