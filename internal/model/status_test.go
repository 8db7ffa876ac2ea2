package model_test

import (
	"testing"

	"jobmate/dashboard-service/internal/model"
)

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"Not Applied", "Applied", "Rejected", "Selected"}
	for _, s := range valid {
		got, err := model.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "UNKNOWN", "applied", " Applied", "Applied "} {
		if _, err := model.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

// All constants must round-trip through ParseStatus without error.
func TestParseStatus_AllConstantsRoundTrip(t *testing.T) {
	for _, s := range model.Statuses {
		got, err := model.ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

// ── Closed value sets ──────────────────────────────────────────────────────

func TestParseClosedSets(t *testing.T) {
	if _, err := model.ParseMode("Remote"); err != nil {
		t.Errorf("ParseMode(Remote): %v", err)
	}
	if _, err := model.ParseMode("remote"); err == nil {
		t.Error("ParseMode must be case-sensitive")
	}
	if _, err := model.ParseExperience("3-5 Years"); err != nil {
		t.Errorf("ParseExperience(3-5 Years): %v", err)
	}
	if _, err := model.ParseExperience("3-5"); err == nil {
		t.Error("ParseExperience(3-5) expected error")
	}
	if _, err := model.ParseSource("Company Site"); err != nil {
		t.Errorf("ParseSource(Company Site): %v", err)
	}
	if _, err := model.ParseSource("Monster"); err == nil {
		t.Error("ParseSource(Monster) expected error")
	}
	if _, err := model.ParseLocation("Pune"); err != nil {
		t.Errorf("ParseLocation(Pune): %v", err)
	}
	if _, err := model.ParseLocation("Delhi"); err == nil {
		t.Error("ParseLocation(Delhi) expected error")
	}
}

func TestJobClone_DoesNotShareSkills(t *testing.T) {
	j := model.Job{ID: "job-1", Skills: []string{"Go", "SQL"}}
	c := j.Clone()
	c.Skills[0] = "Rust"
	if j.Skills[0] != "Go" {
		t.Errorf("Clone shares the skills slice: original now %v", j.Skills)
	}
}
