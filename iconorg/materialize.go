package iconorg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dendrascience/icon-organizer/util"
)

// Placement records where a source file was copied.
type Placement struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// GroupPlacement records the copies made for one cluster.
type GroupPlacement struct {
	Index   int         `json:"index"`
	Dir     string      `json:"dir"`
	Seed    string      `json:"seed"`
	Members []Placement `json:"members"`
}

// MaterializeResult lists every copy written and every copy that failed.
type MaterializeResult struct {
	UniqueDir  string
	SimilarDir string
	Unique     []Placement
	Groups     []GroupPlacement
	Failures   []*FileError
}

// GroupDir returns the directory name of the 1-based cluster index n.
func GroupDir(n int) string {
	return fmt.Sprintf("%s%d", GroupDirPrefix, n)
}

// Materialize copies unique icons into <outputRoot>/unique_icons and each
// cluster into <outputRoot>/similar_groups/group_<N>, numbering clusters from
// 1 in the order given. Name collisions are resolved by suffixing: unique
// icons use the count of unique icons already copied, cluster members use
// their index within the cluster. A failed copy is recorded and the pass
// continues; only a missing output tree or cancellation stops it.
func Materialize(ctx context.Context, outputRoot string, unique []FingerprintGroup, clusters []Cluster) (*MaterializeResult, error) {
	res := &MaterializeResult{
		UniqueDir:  filepath.Join(outputRoot, UniqueDirName),
		SimilarDir: filepath.Join(outputRoot, SimilarDirName),
	}
	for _, dir := range []string{res.UniqueDir, res.SimilarDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", util.ErrOutputRoot, dir, err)
		}
	}

	copied := 0
	for _, g := range unique {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		for _, src := range g.Paths {
			dst, err := util.CopyInto(src, res.UniqueDir, copied)
			if err != nil {
				res.Failures = append(res.Failures, copyFailure(src, err))
				continue
			}
			res.Unique = append(res.Unique, Placement{Source: src, Destination: dst})
			copied++
		}
	}

	for i, c := range clusters {
		gp := GroupPlacement{
			Index: i + 1,
			Dir:   filepath.Join(res.SimilarDir, GroupDir(i+1)),
			Seed:  c.Seed,
		}
		if err := os.MkdirAll(gp.Dir, 0o755); err != nil {
			for _, src := range c.Paths {
				res.Failures = append(res.Failures, copyFailure(src, err))
			}
			res.Groups = append(res.Groups, gp)
			continue
		}
		for j, src := range c.Paths {
			if err := ctx.Err(); err != nil {
				res.Groups = append(res.Groups, gp)
				return res, err
			}
			dst, err := util.CopyInto(src, gp.Dir, j)
			if err != nil {
				res.Failures = append(res.Failures, copyFailure(src, err))
				continue
			}
			gp.Members = append(gp.Members, Placement{Source: src, Destination: dst})
		}
		res.Groups = append(res.Groups, gp)
	}
	return res, nil
}

func copyFailure(src string, err error) *FileError {
	return &FileError{Path: src, Stage: StageCopy, Kind: KindWriteFailure, Err: err}
}
