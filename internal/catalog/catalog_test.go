package catalog_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"jobmate/dashboard-service/internal/catalog"
	"jobmate/dashboard-service/internal/model"
)

func TestGenerate_SameSeedSameCatalog(t *testing.T) {
	a := catalog.Generate(60, 42)
	b := catalog.Generate(60, 42)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Generate with the same seed produced different catalogs")
	}
}

func TestGenerate_FieldsWithinClosedSets(t *testing.T) {
	jobs := catalog.Generate(200, 7)
	if len(jobs) != 200 {
		t.Fatalf("len = %d, want 200", len(jobs))
	}
	for i, j := range jobs {
		if want := fmt.Sprintf("job-%d", i+1); j.ID != want {
			t.Errorf("jobs[%d].ID = %q, want %q", i, j.ID, want)
		}
		if _, err := model.ParseLocation(j.Location); err != nil {
			t.Errorf("%s: %v", j.ID, err)
		}
		if _, err := model.ParseMode(string(j.Mode)); err != nil {
			t.Errorf("%s: %v", j.ID, err)
		}
		if _, err := model.ParseExperience(string(j.Experience)); err != nil {
			t.Errorf("%s: %v", j.ID, err)
		}
		if _, err := model.ParseSource(string(j.Source)); err != nil {
			t.Errorf("%s: %v", j.ID, err)
		}
		if j.PostedDaysAgo < 0 || j.PostedDaysAgo > 9 {
			t.Errorf("%s: postedDaysAgo = %d, want [0,9]", j.ID, j.PostedDaysAgo)
		}
		if len(j.Skills) == 0 || len(j.Skills) > 5 {
			t.Errorf("%s: %d skills, want 1..5", j.ID, len(j.Skills))
		}
		if strings.Contains(j.Title, "Intern") && j.Experience != model.ExperienceFresher {
			t.Errorf("%s: intern role %q has experience %q", j.ID, j.Title, j.Experience)
		}
		if !strings.Contains(j.Description, j.Company) {
			t.Errorf("%s: description does not mention company %q", j.ID, j.Company)
		}
	}
}

func TestStatic_LookupAndIsolation(t *testing.T) {
	src := []model.Job{
		{ID: "a", Title: "First", Skills: []string{"Go"}},
		{ID: "b", Title: "Second"},
		{ID: "a", Title: "Duplicate"},
	}
	c := catalog.NewStatic(src)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicate id dropped)", c.Len())
	}
	j, ok := c.Job("a")
	if !ok || j.Title != "First" {
		t.Fatalf("Job(a) = %+v, %v", j, ok)
	}
	if _, ok := c.Job("missing"); ok {
		t.Error("Job(missing) should report false")
	}

	// Mutating what callers get back must not leak into the catalog.
	j.Skills[0] = "Rust"
	jobs := c.Jobs()
	jobs[0].Title = "Changed"
	again, _ := c.Job("a")
	if again.Skills[0] != "Go" || again.Title != "First" {
		t.Errorf("catalog was mutated through a returned value: %+v", again)
	}

	src[1].Title = "Mutated source"
	if b, _ := c.Job("b"); b.Title != "Second" {
		t.Errorf("catalog shares the constructor slice: %+v", b)
	}
}

func TestOptions(t *testing.T) {
	opts := catalog.Options()
	if len(opts.Locations) != 8 || len(opts.Modes) != 3 || len(opts.Experiences) != 5 ||
		len(opts.Sources) != 5 || len(opts.Statuses) != 4 {
		t.Errorf("unexpected option set sizes: %+v", opts)
	}
}
