package iconorg

import (
	"time"

	"github.com/dendrascience/icon-organizer/util"
	"github.com/dendrascience/icon-organizer/version"
)

type (
	// Report is the JSON record of a run, written to
	// <output>/organize_report.json.
	Report struct {
		RunID           string          `json:"run_id"`
		Version         string          `json:"version"`
		StartedAt       time.Time       `json:"started_at"`
		FinishedAt      time.Time       `json:"finished_at"`
		Input           string          `json:"input"`
		Output          string          `json:"output"`
		Threshold       int             `json:"threshold"`
		Metric          Metric          `json:"metric"`
		Summary         Summary         `json:"summary"`
		DuplicateGroups []DigestGroup   `json:"duplicate_groups"`
		Groups          []ReportGroup   `json:"groups"`
		Unique          []Placement     `json:"unique"`
		Failures        []ReportFailure `json:"failures"`
	}
	ReportGroup struct {
		Index   int         `json:"index"`
		Seed    string      `json:"seed"`
		Color   int         `json:"color"`   // xterm-256 colour code
		Members []Placement `json:"members"` // Destination is empty on a dry run or failed copy
	}
	ReportFailure struct {
		Path  string `json:"path"`
		Stage Stage  `json:"stage"`
		Kind  Kind   `json:"kind"`
		Error string `json:"error"`
	}
)

// BuildReport assembles a Report from a finished run.
func BuildReport(r *Result) Report {
	rep := Report{
		RunID:           r.RunID,
		Version:         version.GetVersion(),
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
		Input:           r.Options.InputRoot,
		Output:          r.Options.OutputRoot,
		Threshold:       r.Options.Threshold,
		Metric:          r.Options.Metric,
		Summary:         r.Summary,
		DuplicateGroups: []DigestGroup{},
		Groups:          []ReportGroup{},
		Unique:          []Placement{},
		Failures:        []ReportFailure{},
	}
	for _, g := range r.Digests.Groups {
		if len(g.Paths) > 1 {
			rep.DuplicateGroups = append(rep.DuplicateGroups, g)
		}
	}

	copied := make(map[string]string)
	if r.Placement != nil {
		for _, gp := range r.Placement.Groups {
			for _, m := range gp.Members {
				copied[m.Source] = m.Destination
			}
		}
		rep.Unique = append(rep.Unique, r.Placement.Unique...)
	} else {
		for _, g := range r.Clusters.Unique {
			for _, p := range g.Paths {
				rep.Unique = append(rep.Unique, Placement{Source: p})
			}
		}
	}

	for i, c := range r.Clusters.Clusters {
		rg := ReportGroup{
			Index: i + 1,
			Seed:  c.Seed,
			Color: util.ColorTagFromHash(c.Seed),
		}
		for _, p := range c.Paths {
			rg.Members = append(rg.Members, Placement{Source: p, Destination: copied[p]})
		}
		rep.Groups = append(rep.Groups, rg)
	}

	for _, f := range r.Failures {
		rep.Failures = append(rep.Failures, ReportFailure{
			Path:  f.Path,
			Stage: f.Stage,
			Kind:  f.Kind,
			Error: f.Err.Error(),
		})
	}
	return rep
}
