// Package model defines the shared data structures for the dashboard service.
package model

import "fmt"

// Mode is the work arrangement of a listing.
type Mode string

const (
	ModeRemote Mode = "Remote"
	ModeHybrid Mode = "Hybrid"
	ModeOnsite Mode = "Onsite"
)

// Experience is the seniority band a listing asks for.
type Experience string

const (
	ExperienceFresher   Experience = "Fresher"
	ExperienceZeroOne   Experience = "0-1 Years"
	ExperienceOneThree  Experience = "1-3 Years"
	ExperienceThreeFive Experience = "3-5 Years"
	ExperienceFivePlus  Experience = "5+ Years"
)

// Source is the job board a listing was published on.
type Source string

const (
	SourceLinkedIn    Source = "LinkedIn"
	SourceNaukri      Source = "Naukri"
	SourceIndeed      Source = "Indeed"
	SourceWellfound   Source = "Wellfound"
	SourceCompanySite Source = "Company Site"
)

// Closed value sets, in display order.
var (
	Locations   = []string{"Bangalore", "Hyderabad", "Pune", "Chennai", "Gurgaon", "Noida", "Mumbai", "Remote"}
	Modes       = []Mode{ModeRemote, ModeHybrid, ModeOnsite}
	Experiences = []Experience{ExperienceFresher, ExperienceZeroOne, ExperienceOneThree, ExperienceThreeFive, ExperienceFivePlus}
	Sources     = []Source{SourceLinkedIn, SourceNaukri, SourceIndeed, SourceWellfound, SourceCompanySite}
)

// Job is a single listing in the catalog. Skills may contain duplicates.
type Job struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Company       string     `json:"company"`
	Location      string     `json:"location"`
	Mode          Mode       `json:"mode"`
	Experience    Experience `json:"experience"`
	Skills        []string   `json:"skills"`
	Source        Source     `json:"source"`
	PostedDaysAgo int        `json:"postedDaysAgo"`
	SalaryRange   string     `json:"salaryRange"`
	ApplyURL      string     `json:"applyUrl"`
	Description   string     `json:"description"`
}

// Clone returns a copy that shares no slices with j.
func (j Job) Clone() Job {
	c := j
	if j.Skills != nil {
		c.Skills = append([]string(nil), j.Skills...)
	}
	return c
}

// Preferences holds a user's matching criteria. An empty Experience means any.
// A nil *Preferences means "not configured", which is not the same as a zero value.
type Preferences struct {
	RoleKeywords  []string   `json:"roleKeywords"`
	Locations     []string   `json:"locations"`
	Modes         []Mode     `json:"modes"`
	Experience    Experience `json:"experience"`
	Skills        []string   `json:"skills"`
	MinMatchScore int        `json:"minMatchScore"`
}

// ParseMode converts a raw string to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown work mode %q", s)
}

// ParseExperience converts a raw string to an Experience.
func ParseExperience(s string) (Experience, error) {
	for _, e := range Experiences {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// ParseSource converts a raw string to a Source.
func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown job source %q", s)
}

// ParseLocation validates a raw location against the closed location set.
func ParseLocation(s string) (string, error) {
	for _, l := range Locations {
		if l == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown location %q", s)
}
