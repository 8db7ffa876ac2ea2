// Package catalog provides the fixed pool of job listings the dashboard
// scores and filters. The pool is built once at startup and never changes
// for the lifetime of the process.
package catalog

import "jobmate/dashboard-service/internal/model"

// Provider is the read-only view of the catalog used by the rest of the
// service.
type Provider interface {
	// Jobs returns every listing in a stable order.
	Jobs() []model.Job
	// Job looks a listing up by id.
	Job(id string) (model.Job, bool)
}

// Static is an in-memory Provider over a fixed slice of jobs.
type Static struct {
	jobs  []model.Job
	index map[string]int
}

// NewStatic copies jobs into a new Static catalog. Later duplicates of an id
// are dropped.
func NewStatic(jobs []model.Job) *Static {
	s := &Static{
		jobs:  make([]model.Job, 0, len(jobs)),
		index: make(map[string]int, len(jobs)),
	}
	for _, j := range jobs {
		if _, dup := s.index[j.ID]; dup {
			continue
		}
		s.index[j.ID] = len(s.jobs)
		s.jobs = append(s.jobs, j.Clone())
	}
	return s
}

// Jobs returns a copy of the catalog in insertion order.
func (s *Static) Jobs() []model.Job {
	out := make([]model.Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = j.Clone()
	}
	return out
}

// Job returns the listing with the given id.
func (s *Static) Job(id string) (model.Job, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.Job{}, false
	}
	return s.jobs[i].Clone(), true
}

// Len reports the number of listings.
func (s *Static) Len() int { return len(s.jobs) }

// OptionSet is the closed vocabulary a settings form offers.
type OptionSet struct {
	Locations   []string           `json:"locations"`
	Modes       []model.Mode       `json:"modes"`
	Experiences []model.Experience `json:"experiences"`
	Sources     []model.Source     `json:"sources"`
	Statuses    []model.JobStatus  `json:"statuses"`
}

// Options returns the closed value sets.
func Options() OptionSet {
	return OptionSet{
		Locations:   append([]string(nil), model.Locations...),
		Modes:       append([]model.Mode(nil), model.Modes...),
		Experiences: append([]model.Experience(nil), model.Experiences...),
		Sources:     append([]model.Source(nil), model.Sources...),
		Statuses:    append([]model.JobStatus(nil), model.Statuses...),
	}
}
