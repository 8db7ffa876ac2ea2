// Package pipeline derives the ordered job lists the dashboard and saved
// views render. Everything here is a pure function of its inputs and is
// recomputed on every request.
package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"jobmate/dashboard-service/internal/ledger"
	"jobmate/dashboard-service/internal/model"
	"jobmate/dashboard-service/internal/scoring"
)

// SortKey selects the ordering of a view.
type SortKey string

const (
	SortMatchDesc SortKey = "match-desc"
	SortLatest    SortKey = "latest"
	SortOldest    SortKey = "oldest"
)

// DefaultSort applies when no sort key is given.
const DefaultSort = SortLatest

// ParseSort converts a raw sort key. An empty string yields DefaultSort.
func ParseSort(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return DefaultSort, nil
	case SortMatchDesc, SortLatest, SortOldest:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Input is the state a view is derived from.
type Input struct {
	Jobs        []model.Job
	Preferences *model.Preferences
	Statuses    map[string]model.JobStatus
	Saved       []string
}

// Filters are the view-local selections. Zero values disable a filter.
type Filters struct {
	Keyword     string
	Location    string
	Mode        model.Mode
	Experience  model.Experience
	Source      model.Source
	Status      model.JobStatus
	MatchesOnly bool
	Sort        SortKey
}

// ScoredJob is a catalog job annotated for rendering.
type ScoredJob struct {
	model.Job
	Score  int             `json:"matchScore"`
	Status model.JobStatus `json:"status"`
	Saved  bool            `json:"saved"`
}

// Compute returns the dashboard view: every catalog job that passes all
// filters, in the order of f.Sort. Jobs that compare equal keep catalog order.
func Compute(in Input, f Filters) []ScoredJob {
	saved := make(map[string]struct{}, len(in.Saved))
	for _, id := range in.Saved {
		saved[id] = struct{}{}
	}

	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	out := make([]ScoredJob, 0, len(in.Jobs))
	for _, j := range in.Jobs {
		sj := ScoredJob{
			Job:    j,
			Score:  scoring.Score(j, in.Preferences),
			Status: ledger.StatusOf(in.Statuses, j.ID),
		}
		_, sj.Saved = saved[j.ID]

		if keyword != "" &&
			!strings.Contains(strings.ToLower(j.Title), keyword) &&
			!strings.Contains(strings.ToLower(j.Company), keyword) {
			continue
		}
		if f.Location != "" && j.Location != f.Location {
			continue
		}
		if f.Mode != "" && j.Mode != f.Mode {
			continue
		}
		if f.Experience != "" && j.Experience != f.Experience {
			continue
		}
		if f.Source != "" && j.Source != f.Source {
			continue
		}
		if f.Status != "" && sj.Status != f.Status {
			continue
		}
		if f.MatchesOnly && in.Preferences != nil && sj.Score < in.Preferences.MinMatchScore {
			continue
		}
		out = append(out, sj)
	}

	sortJobs(out, f.Sort)
	return out
}

// ComputeSaved returns the saved view: the dashboard rules applied to the
// saved jobs only. The matches-only filter is not offered there and is
// ignored.
func ComputeSaved(in Input, f Filters) []ScoredJob {
	ids := make(map[string]struct{}, len(in.Saved))
	for _, id := range in.Saved {
		ids[id] = struct{}{}
	}
	restricted := in
	restricted.Jobs = make([]model.Job, 0, len(in.Saved))
	for _, j := range in.Jobs {
		if _, ok := ids[j.ID]; ok {
			restricted.Jobs = append(restricted.Jobs, j)
		}
	}
	f.MatchesOnly = false
	return Compute(restricted, f)
}

func sortJobs(jobs []ScoredJob, key SortKey) {
	if key == "" {
		key = DefaultSort
	}
	switch key {
	case SortMatchDesc:
		slices.SortStableFunc(jobs, func(a, b ScoredJob) int { return cmp.Compare(b.Score, a.Score) })
	case SortLatest:
		slices.SortStableFunc(jobs, func(a, b ScoredJob) int { return cmp.Compare(a.PostedDaysAgo, b.PostedDaysAgo) })
	case SortOldest:
		slices.SortStableFunc(jobs, func(a, b ScoredJob) int { return cmp.Compare(b.PostedDaysAgo, a.PostedDaysAgo) })
	}
}
