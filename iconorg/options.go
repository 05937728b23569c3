package iconorg

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/icon-organizer/util"
	"github.com/sirupsen/logrus"
)

// Output subdirectory names under the output root.
const (
	UniqueDirName    = "unique_icons"
	SimilarDirName   = "similar_groups"
	GroupDirPrefix   = "group_"
	ReportFileName   = "organize_report.json"
	DefaultThreshold = 2
)

var (
	ErrInvalidThreshold = errors.New("threshold must not be negative")
	ErrInvalidWorkers   = errors.New("workers must be at least 1")
	ErrMissingInput     = errors.New("input path is required")
	ErrMissingOutput    = errors.New("output path is required")
)

// Options configures a Run.
type Options struct {
	InputRoot  string
	OutputRoot string
	Threshold  int
	Metric     Metric
	Workers    int
	DryRun     bool
	Report     bool
	Progress   bool
	Extensions []string

	// Logger receives per-file failures. Defaults to a logger on stderr.
	Logger *logrus.Logger
	// Stdout receives progress and summary lines. Defaults to os.Stdout.
	Stdout io.Writer
	// ProgressOut receives progress bars. Defaults to os.Stderr.
	ProgressOut io.Writer
	// Digester and Fingerprinter default to MD5 and goimagehash phash.
	Digester      Digester
	Fingerprinter Fingerprinter
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	return Options{
		Threshold:  DefaultThreshold,
		Metric:     MetricHex,
		Workers:    1,
		Extensions: util.ImageExtensions,
	}
}

// Validate checks the user-supplied fields.
func (o Options) Validate() error {
	var errs []error
	if o.InputRoot == "" {
		errs = append(errs, ErrMissingInput)
	}
	if o.OutputRoot == "" {
		errs = append(errs, ErrMissingOutput)
	}
	if o.Threshold < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidThreshold, o.Threshold))
	}
	if o.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, o.Workers))
	}
	if _, err := o.Metric.Distance(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (o Options) withDefaults() Options {
	if o.Metric == "" {
		o.Metric = MetricHex
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	if o.Extensions == nil {
		o.Extensions = util.ImageExtensions
	}
	if o.Logger == nil {
		o.Logger = NewLogger(os.Stderr, false)
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.ProgressOut == nil {
		o.ProgressOut = os.Stderr
	}
	if o.Digester == nil {
		o.Digester = MD5Digester{}
	}
	if o.Fingerprinter == nil {
		o.Fingerprinter = PerceptualHasher{}
	}
	return o
}

// NewLogger returns a text logger writing to w at Info level, or Debug when
// verbose is set.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
