package iconorg

import (
	"context"
	"slices"

	"github.com/schollz/progressbar/v3"
)

// FingerprintGroup is every representative path sharing one exact
// fingerprint.
type FingerprintGroup struct {
	Fingerprint string   `json:"fingerprint"`
	Paths       []string `json:"paths"`
}

// FingerprintResult is the outcome of fingerprinting the representatives.
type FingerprintResult struct {
	// Groups in first-discovery order of their fingerprint.
	Groups   []FingerprintGroup
	Failures []*FileError
}

// GroupByFingerprint fingerprints every path and groups paths with equal
// fingerprints. The group order is the order in which each fingerprint was
// first produced, walking paths from the start; clustering depends on it.
func GroupByFingerprint(ctx context.Context, paths []string, f Fingerprinter, workers int, bar *progressbar.ProgressBar) (FingerprintResult, error) {
	outcomes, err := mapFiles(ctx, paths, workers, bar, f.Fingerprint)
	if err != nil {
		return FingerprintResult{}, err
	}

	var res FingerprintResult
	index := make(map[string]int)
	for i, o := range outcomes {
		if o.err != nil {
			res.Failures = append(res.Failures, &FileError{
				Path:  paths[i],
				Stage: StageFingerprint,
				Kind:  classify(o.err),
				Err:   o.err,
			})
			continue
		}
		if gi, ok := index[o.value]; ok {
			res.Groups[gi].Paths = append(res.Groups[gi].Paths, paths[i])
			continue
		}
		index[o.value] = len(res.Groups)
		res.Groups = append(res.Groups, FingerprintGroup{Fingerprint: o.value, Paths: []string{paths[i]}})
	}
	return res, nil
}

// Cluster is a set of paths gathered around a seed fingerprint. Every
// fingerprint in Fingerprints is within the threshold of Seed; members are
// not necessarily within the threshold of each other.
type Cluster struct {
	Seed         string   `json:"seed"`
	Fingerprints []string `json:"fingerprints"`
	Paths        []string `json:"paths"`
}

// ClusterResult partitions the fingerprint groups.
type ClusterResult struct {
	// Clusters with at least two paths, in seed order.
	Clusters []Cluster
	// Unique holds the single-path groups that neither merged into a
	// cluster nor had anything merged into them.
	Unique []FingerprintGroup
}

// ClusterGroups performs one greedy pass over groups in the given order.
// Each group not yet consumed seeds a cluster, marks itself consumed, then
// scans every other unconsumed group once and absorbs those whose fingerprint
// is within threshold of the seed by dist. Absorbed groups are consumed and
// never seed a cluster of their own.
//
// The outcome depends on the order of groups: a group within range of two
// seeds joins whichever seed comes first. Callers pin the order.
func ClusterGroups(groups []FingerprintGroup, threshold int, dist DistanceFunc) ClusterResult {
	var res ClusterResult
	processed := make([]bool, len(groups))

	for i, seed := range groups {
		if processed[i] {
			continue
		}
		processed[i] = true
		c := Cluster{
			Seed:         seed.Fingerprint,
			Fingerprints: []string{seed.Fingerprint},
			Paths:        slices.Clone(seed.Paths),
		}

		for j, other := range groups {
			if processed[j] || other.Fingerprint == seed.Fingerprint {
				continue
			}
			if dist(seed.Fingerprint, other.Fingerprint) <= threshold {
				c.Fingerprints = append(c.Fingerprints, other.Fingerprint)
				c.Paths = append(c.Paths, other.Paths...)
				processed[j] = true
			}
		}

		if len(c.Paths) > 1 {
			res.Clusters = append(res.Clusters, c)
		} else {
			res.Unique = append(res.Unique, seed)
		}
	}
	return res
}

// ClusteredPaths counts the paths held by all clusters.
func (r ClusterResult) ClusteredPaths() int {
	n := 0
	for _, c := range r.Clusters {
		n += len(c.Paths)
	}
	return n
}
