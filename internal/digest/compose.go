package digest

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"jobmate/dashboard-service/internal/model"
	"jobmate/dashboard-service/internal/scoring"
)

// Size is the maximum number of entries in a digest.
const Size = 10

// Entry is one digest line: the job as it was at generation time plus its
// score.
type Entry struct {
	model.Job
	Score int `json:"matchScore"`
}

// Select scores jobs against prefs and returns the best Size entries at or
// above prefs.MinMatchScore, ordered by score descending and then by
// postedDaysAgo ascending. It never returns nil.
func Select(jobs []model.Job, prefs model.Preferences) []Entry {
	entries := make([]Entry, 0, Size)
	for _, j := range jobs {
		score := scoring.Score(j, &prefs)
		if score < prefs.MinMatchScore {
			continue
		}
		entries = append(entries, Entry{Job: j.Clone(), Score: score})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.PostedDaysAgo, b.PostedDaysAgo)
	})
	if len(entries) > Size {
		entries = entries[:Size]
	}
	return entries
}

// DateKey returns the calendar date of t in loc as YYYY-MM-DD. A nil loc
// uses t's own location.
func DateKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(time.DateOnly)
}

// Subject is the title used for exported digests.
func Subject(date string) string {
	return "My 9AM Job Digest - " + date
}

// PlainText renders a digest for the clipboard.
func PlainText(date string, entries []Entry) string {
	var b strings.Builder
	b.WriteString(Subject(date))
	b.WriteString("\n\n")
	if len(entries) == 0 {
		b.WriteString("No matching roles today.\n")
		return b.String()
	}
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, e.Title, e.Company)
		fmt.Fprintf(&b, "   %s | %s | %s | Match %d%%\n", e.Location, e.Mode, e.Experience, e.Score)
		if e.ApplyURL != "" {
			fmt.Fprintf(&b, "   Apply: %s\n", e.ApplyURL)
		}
	}
	return b.String()
}

// MailtoURL returns a mailto: link with the digest as subject and body.
func MailtoURL(date string, entries []Entry) string {
	return "mailto:?subject=" + escape(Subject(date)) + "&body=" + escape(PlainText(date, entries))
}

// escape percent-encodes s for a mailto query. Mail clients do not read "+"
// as a space, so spaces are written as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
