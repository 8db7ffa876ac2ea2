// Package scoring computes how well a job matches a user's preferences.
//
// The score is a sum of fixed weights over independent signals, capped at
// MaxScore:
//
//	title keyword        25    location     15    experience  10
//	description keyword  15    mode         10    skill       15
//	posted <= 2 days ago  5    LinkedIn      5
package scoring

import "jobmate/dashboard-service/internal/model"

// MaxScore is the upper bound of Score. New weights must keep results inside
// [0, MaxScore] through the cap, not by rebalancing.
const MaxScore = 100

// PreferredSource earns a fixed bonus. It is product policy, not a user setting.
const PreferredSource = model.SourceLinkedIn

// FreshDays is the largest postedDaysAgo that still counts as fresh.
const FreshDays = 2

// Signal weights.
const (
	WeightTitleKeyword       = 25
	WeightDescriptionKeyword = 15
	WeightLocation           = 15
	WeightMode               = 10
	WeightExperience         = 10
	WeightSkill              = 15
	WeightFresh              = 5
	WeightPreferredSource    = 5
)

// Breakdown records which signals fired for a (job, preferences) pair.
type Breakdown struct {
	TitleKeyword       bool `json:"titleKeyword"`
	DescriptionKeyword bool `json:"descriptionKeyword"`
	Location           bool `json:"location"`
	Mode               bool `json:"mode"`
	Experience         bool `json:"experience"`
	Skill              bool `json:"skill"`
	Fresh              bool `json:"fresh"`
	PreferredSource    bool `json:"preferredSource"`
}

// Explain evaluates every signal. A nil prefs yields an all-false Breakdown.
func Explain(job model.Job, prefs *model.Preferences) Breakdown {
	if prefs == nil {
		return Breakdown{}
	}
	return Breakdown{
		TitleKeyword:       containsAnyFold(job.Title, prefs.RoleKeywords),
		DescriptionKeyword: containsAnyFold(job.Description, prefs.RoleKeywords),
		Location:           member(job.Location, prefs.Locations),
		Mode:               member(job.Mode, prefs.Modes),
		Experience:         prefs.Experience != "" && job.Experience == prefs.Experience,
		Skill:              overlapsFold(prefs.Skills, job.Skills),
		Fresh:              job.PostedDaysAgo <= FreshDays,
		PreferredSource:    job.Source == PreferredSource,
	}
}

// Total sums the weights of the fired signals, capped at MaxScore.
func (b Breakdown) Total() int {
	score := 0
	add := func(hit bool, w int) {
		if hit {
			score += w
		}
	}
	add(b.TitleKeyword, WeightTitleKeyword)
	add(b.DescriptionKeyword, WeightDescriptionKeyword)
	add(b.Location, WeightLocation)
	add(b.Mode, WeightMode)
	add(b.Experience, WeightExperience)
	add(b.Skill, WeightSkill)
	add(b.Fresh, WeightFresh)
	add(b.PreferredSource, WeightPreferredSource)
	return min(score, MaxScore)
}

// Score returns the match score of job against prefs in [0, MaxScore].
//
// A nil prefs means scoring is disabled and every job scores 0; callers that
// need to tell "not configured" from "poor match" must check prefs themselves.
func Score(job model.Job, prefs *model.Preferences) int {
	if prefs == nil {
		return 0
	}
	return Explain(job, prefs).Total()
}
