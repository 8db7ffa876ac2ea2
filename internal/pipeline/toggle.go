package pipeline

import "sync"

// MatchesOnlyToggle remembers each user's "show only matches" choice for the
// lifetime of the process.
//
// The toggle turns itself on once, the first time a user is seen with
// preferences. After the user sets it explicitly that choice is kept.
type MatchesOnlyToggle struct {
	mu    sync.Mutex
	users map[string]toggleState
}

type toggleState struct {
	on        bool
	explicit  bool
	defaulted bool
}

func NewMatchesOnlyToggle() *MatchesOnlyToggle {
	return &MatchesOnlyToggle{users: make(map[string]toggleState)}
}

// Resolve returns the effective toggle value for userID.
func (t *MatchesOnlyToggle) Resolve(userID string, hasPreferences bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.users[userID]
	if !st.explicit && !st.defaulted && hasPreferences {
		st.on = true
		st.defaulted = true
		t.users[userID] = st
	}
	return st.on
}

// Set records an explicit user choice.
func (t *MatchesOnlyToggle) Set(userID string, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.users[userID] = toggleState{on: on, explicit: true, defaulted: true}
}
