package scoring

import "strings"

// containsAnyFold returns true if any non-blank term appears (case-insensitive)
// anywhere in text. Terms are trimmed before matching.
func containsAnyFold(text string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// overlapsFold returns true if any non-blank want term equals any have term,
// ignoring case.
func overlapsFold(want, have []string) bool {
	if len(want) == 0 || len(have) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(h)] = struct{}{}
	}
	for _, w := range want {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := set[strings.ToLower(w)]; ok {
			return true
		}
	}
	return false
}

func member[T comparable](v T, set []T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
