package iconorg

import (
	"context"

	"github.com/schollz/progressbar/v3"
)

// DigestGroup is every discovered path sharing one content digest, in
// discovery order. Paths[0] is the group's representative.
type DigestGroup struct {
	Digest string   `json:"digest"`
	Paths  []string `json:"paths"`
}

// Representative returns the first-discovered path of the group.
func (g DigestGroup) Representative() string {
	return g.Paths[0]
}

// DigestResult is the outcome of exact-duplicate grouping.
type DigestResult struct {
	// Groups in first-discovery order of their digest.
	Groups []DigestGroup
	// Representatives holds Groups[i].Representative() at index i.
	Representatives []string
	// Duplicates counts paths dropped as byte-identical to a representative.
	Duplicates int
	// Failures lists paths that produced no digest.
	Failures []*FileError
}

// GroupByDigest digests every path and partitions the paths into
// equivalence classes by digest. Paths whose digest cannot be computed are
// reported in Failures and take no further part.
func GroupByDigest(ctx context.Context, paths []string, d Digester, workers int, bar *progressbar.ProgressBar) (DigestResult, error) {
	outcomes, err := mapFiles(ctx, paths, workers, bar, d.Digest)
	if err != nil {
		return DigestResult{}, err
	}
	return groupDigests(paths, outcomes), nil
}

func groupDigests(paths []string, outcomes []fileOutcome) DigestResult {
	var res DigestResult
	index := make(map[string]int)
	digested := 0
	for i, o := range outcomes {
		if o.err != nil {
			res.Failures = append(res.Failures, &FileError{
				Path:  paths[i],
				Stage: StageDigest,
				Kind:  KindUnreadable,
				Err:   o.err,
			})
			continue
		}
		digested++
		if gi, ok := index[o.value]; ok {
			res.Groups[gi].Paths = append(res.Groups[gi].Paths, paths[i])
			continue
		}
		index[o.value] = len(res.Groups)
		res.Groups = append(res.Groups, DigestGroup{Digest: o.value, Paths: []string{paths[i]}})
	}
	res.Representatives = make([]string, len(res.Groups))
	for i, g := range res.Groups {
		res.Representatives[i] = g.Representative()
	}
	res.Duplicates = digested - len(res.Groups)
	return res
}
