package pipeline

import (
	"testing"

	"jobmate/dashboard-service/internal/model"
)

func fixtureJobs() []model.Job {
	return []model.Job{
		{ID: "job-1", Title: "Backend Engineer", Company: "Razorpay", Location: "Bangalore", Mode: model.ModeRemote,
			Experience: model.ExperienceThreeFive, Skills: []string{"Python", "SQL"}, Source: model.SourceLinkedIn, PostedDaysAgo: 1},
		{ID: "job-2", Title: "Data Analyst", Company: "Swiggy", Location: "Pune", Mode: model.ModeOnsite,
			Experience: model.ExperienceOneThree, Skills: []string{"Excel"}, Source: model.SourceNaukri, PostedDaysAgo: 9},
		{ID: "job-3", Title: "Frontend Engineer", Company: "Zoho", Location: "Chennai", Mode: model.ModeHybrid,
			Experience: model.ExperienceOneThree, Skills: []string{"React"}, Source: model.SourceIndeed, PostedDaysAgo: 4},
		{ID: "job-4", Title: "SDE Intern", Company: "Infosys Engineering", Location: "Bangalore", Mode: model.ModeOnsite,
			Experience: model.ExperienceFresher, Skills: []string{"Java"}, Source: model.SourceWellfound, PostedDaysAgo: 1},
	}
}

func fixturePrefs() *model.Preferences {
	return &model.Preferences{
		RoleKeywords:  []string{"Engineer"},
		Locations:     []string{"Bangalore"},
		Modes:         []model.Mode{model.ModeRemote},
		Experience:    model.ExperienceThreeFive,
		Skills:        []string{"Python"},
		MinMatchScore: 40,
	}
}

func ids(jobs []ScoredJob) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ── Filters ──────────────────────────────────────────────────────────────────

func TestCompute_Filters(t *testing.T) {
	in := Input{Jobs: fixtureJobs()}
	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"no filters, latest", Filters{}, []string{"job-1", "job-4", "job-3", "job-2"}},
		{"keyword on title", Filters{Keyword: "engineer"}, []string{"job-1", "job-4", "job-3"}},
		{"keyword on company", Filters{Keyword: "ZOHO"}, []string{"job-3"}},
		{"blank keyword ignored", Filters{Keyword: "   "}, []string{"job-1", "job-4", "job-3", "job-2"}},
		{"location", Filters{Location: "Bangalore"}, []string{"job-1", "job-4"}},
		{"mode", Filters{Mode: model.ModeOnsite}, []string{"job-4", "job-2"}},
		{"experience", Filters{Experience: model.ExperienceOneThree}, []string{"job-3", "job-2"}},
		{"source", Filters{Source: model.SourceNaukri}, []string{"job-2"}},
		{"combined", Filters{Location: "Bangalore", Mode: model.ModeRemote}, []string{"job-1"}},
		{"no match", Filters{Keyword: "astronaut"}, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Compute(in, tc.f))
			if !equalIDs(got, tc.want) {
				t.Errorf("Compute(%+v) = %v, want %v", tc.f, got, tc.want)
			}
		})
	}
}

func TestCompute_StatusFilter(t *testing.T) {
	in := Input{Jobs: fixtureJobs()}

	in.Statuses = map[string]model.JobStatus{}
	if got := ids(Compute(in, Filters{Status: model.StatusApplied})); len(got) != 0 {
		t.Fatalf("expected no applied jobs, got %v", got)
	}

	in.Statuses["job-3"] = model.StatusApplied

	applied := ids(Compute(in, Filters{Status: model.StatusApplied}))
	if !equalIDs(applied, []string{"job-3"}) {
		t.Errorf("Applied filter = %v, want [job-3]", applied)
	}
	notApplied := ids(Compute(in, Filters{Status: model.StatusNotApplied}))
	for _, id := range notApplied {
		if id == "job-3" {
			t.Errorf("job-3 must not appear under Not Applied")
		}
	}
	if len(notApplied) != 3 {
		t.Errorf("Not Applied filter = %v, want the 3 untouched jobs", notApplied)
	}
}

func TestCompute_MatchesOnly(t *testing.T) {
	in := Input{Jobs: fixtureJobs(), Preferences: fixturePrefs()}

	got := Compute(in, Filters{MatchesOnly: true, Sort: SortMatchDesc})
	for _, j := range got {
		if j.Score < in.Preferences.MinMatchScore {
			t.Errorf("%s scored %d, below threshold %d", j.ID, j.Score, in.Preferences.MinMatchScore)
		}
	}
	if len(got) == 0 || got[0].ID != "job-1" || got[0].Score != 85 {
		t.Errorf("expected job-1 with 85 first, got %+v", got)
	}

	// Without preferences the toggle has nothing to compare against.
	in.Preferences = nil
	if n := len(Compute(in, Filters{MatchesOnly: true})); n != 4 {
		t.Errorf("MatchesOnly without preferences kept %d jobs, want 4", n)
	}
}

func TestCompute_Annotations(t *testing.T) {
	in := Input{
		Jobs:        fixtureJobs(),
		Preferences: fixturePrefs(),
		Statuses:    map[string]model.JobStatus{"job-2": model.StatusRejected},
		Saved:       []string{"job-2"},
	}
	for _, j := range Compute(in, Filters{}) {
		switch j.ID {
		case "job-1":
			if j.Score != 85 || j.Status != model.StatusNotApplied || j.Saved {
				t.Errorf("job-1 annotations = %+v", j)
			}
		case "job-2":
			if j.Status != model.StatusRejected || !j.Saved {
				t.Errorf("job-2 annotations = %+v", j)
			}
		}
	}
}

// ── Sorting ──────────────────────────────────────────────────────────────────

func TestCompute_Sort(t *testing.T) {
	in := Input{Jobs: fixtureJobs(), Preferences: fixturePrefs()}
	tests := []struct {
		key  SortKey
		want []string
	}{
		// job-1 and job-4 are both 1 day old; catalog order breaks the tie.
		{SortLatest, []string{"job-1", "job-4", "job-3", "job-2"}},
		{SortOldest, []string{"job-2", "job-3", "job-1", "job-4"}},
		{"", []string{"job-1", "job-4", "job-3", "job-2"}},
	}
	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			got := ids(Compute(in, Filters{Sort: tc.key}))
			if !equalIDs(got, tc.want) {
				t.Errorf("sort %q = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}

func TestCompute_MatchDescIsNonIncreasing(t *testing.T) {
	in := Input{Jobs: fixtureJobs(), Preferences: fixturePrefs()}
	got := Compute(in, Filters{Sort: SortMatchDesc})
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("position %d: %d before %d", i, got[i-1].Score, got[i].Score)
		}
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	jobs := fixtureJobs()
	in := Input{Jobs: jobs}
	_ = Compute(in, Filters{Sort: SortOldest})
	if jobs[0].ID != "job-1" || jobs[1].ID != "job-2" {
		t.Errorf("input slice was reordered: %v", jobs)
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		raw     string
		want    SortKey
		wantErr bool
	}{
		{"", SortLatest, false},
		{"latest", SortLatest, false},
		{"oldest", SortOldest, false},
		{"match-desc", SortMatchDesc, false},
		{"score", "", true},
		{"Latest", "", true},
	}
	for _, tc := range tests {
		got, err := ParseSort(tc.raw)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseSort(%q) = %q, %v", tc.raw, got, err)
		}
	}
}

// ── Saved view ───────────────────────────────────────────────────────────────

func TestComputeSaved(t *testing.T) {
	in := Input{
		Jobs:        fixtureJobs(),
		Preferences: fixturePrefs(),
		Saved:       []string{"job-2", "job-1", "job-99"},
	}

	got := ComputeSaved(in, Filters{MatchesOnly: true})
	if !equalIDs(ids(got), []string{"job-1", "job-2"}) {
		t.Fatalf("ComputeSaved = %v, want [job-1 job-2]", ids(got))
	}
	if got[1].Score >= in.Preferences.MinMatchScore {
		t.Fatalf("fixture broken: job-2 should be below threshold")
	}
	for _, j := range got {
		if !j.Saved {
			t.Errorf("%s not flagged as saved", j.ID)
		}
	}

	filtered := ComputeSaved(in, Filters{Location: "Pune"})
	if !equalIDs(ids(filtered), []string{"job-2"}) {
		t.Errorf("saved + location = %v", ids(filtered))
	}
}

func TestComputeSaved_Empty(t *testing.T) {
	if got := ComputeSaved(Input{Jobs: fixtureJobs()}, Filters{}); len(got) != 0 {
		t.Errorf("expected empty saved view, got %v", ids(got))
	}
}
