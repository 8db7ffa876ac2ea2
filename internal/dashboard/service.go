// Package dashboard composes the catalog, the per-user stores, the view
// pipeline and the digest generator into the operations the HTTP API
// exposes.
package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/apperr"
	"jobmate/dashboard-service/internal/catalog"
	"jobmate/dashboard-service/internal/digest"
	"jobmate/dashboard-service/internal/events"
	"jobmate/dashboard-service/internal/ledger"
	"jobmate/dashboard-service/internal/model"
	"jobmate/dashboard-service/internal/pipeline"
	"jobmate/dashboard-service/internal/preferences"
	"jobmate/dashboard-service/internal/saved"
	"jobmate/dashboard-service/internal/scoring"
)

// Deps are the collaborators of a Service. Toggle, Events, Location and
// Now are optional.
type Deps struct {
	Catalog     catalog.Provider
	Preferences *preferences.Store
	Ledger      *ledger.Ledger
	Saved       *saved.Store
	Digest      *digest.Generator
	Toggle      *pipeline.MatchesOnlyToggle
	Events      events.Publisher
	Location    *time.Location
	Logger      *zap.Logger
	Now         func() time.Time
}

// Service holds shared dependencies.
type Service struct {
	catalog catalog.Provider
	prefs   *preferences.Store
	ledger  *ledger.Ledger
	saved   *saved.Store
	digest  *digest.Generator
	toggle  *pipeline.MatchesOnlyToggle
	events  events.Publisher
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

// NewService returns a configured Service.
func NewService(d Deps) *Service {
	s := &Service{
		catalog: d.Catalog,
		prefs:   d.Preferences,
		ledger:  d.Ledger,
		saved:   d.Saved,
		digest:  d.Digest,
		toggle:  d.Toggle,
		events:  d.Events,
		loc:     d.Location,
		now:     d.Now,
		logger:  d.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.toggle == nil {
		s.toggle = pipeline.NewMatchesOnlyToggle()
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

// ─── Response types ───────────────────────────────────────────────────────────

// Feed is the dashboard view.
type Feed struct {
	Jobs        []pipeline.ScoredJob `json:"jobs"`
	Total       int                  `json:"total"`
	MatchesOnly bool                 `json:"matchesOnly"`
	Configured  bool                 `json:"configured"`
}

// JobDetail is one job with the signals behind its score.
type JobDetail struct {
	pipeline.ScoredJob
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// SavedResult is the outcome of a bookmark toggle.
type SavedResult struct {
	JobID string   `json:"jobId"`
	Saved bool     `json:"saved"`
	IDs   []string `json:"savedIds"`
}

// DigestView is a digest together with its lifecycle state.
type DigestView struct {
	Date    string         `json:"date"`
	State   digest.State   `json:"state"`
	Entries []digest.Entry `json:"entries"`
}

// DigestExport holds the two export formats of a digest.
type DigestExport struct {
	Date      string `json:"date"`
	Text      string `json:"text"`
	MailtoURL string `json:"mailtoUrl"`
}

// ─── Preferences ──────────────────────────────────────────────────────────────

// Options returns the closed value sets for settings forms.
func (s *Service) Options() catalog.OptionSet {
	return catalog.Options()
}

// Preferences returns the user's preferences or nil when unset.
func (s *Service) Preferences(ctx context.Context, userID string) (*model.Preferences, error) {
	p, err := s.prefs.Load(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("load preferences", err)
	}
	return p, nil
}

// SavePreferences replaces the user's preferences.
func (s *Service) SavePreferences(ctx context.Context, userID string, p model.Preferences) error {
	if err := s.prefs.Save(ctx, userID, p); err != nil {
		return apperr.Internal("save preferences", err)
	}
	return nil
}

// ─── Views ────────────────────────────────────────────────────────────────────

func (s *Service) input(ctx context.Context, userID string) (pipeline.Input, error) {
	prefs, err := s.prefs.Load(ctx, userID)
	if err != nil {
		return pipeline.Input{}, apperr.Internal("load preferences", err)
	}
	statuses, err := s.ledger.CurrentStatuses(ctx, userID)
	if err != nil {
		return pipeline.Input{}, apperr.Internal("load statuses", err)
	}
	ids, err := s.saved.IDs(ctx, userID)
	if err != nil {
		return pipeline.Input{}, apperr.Internal("load saved jobs", err)
	}
	return pipeline.Input{
		Jobs:        s.catalog.Jobs(),
		Preferences: prefs,
		Statuses:    statuses,
		Saved:       ids,
	}, nil
}

// Feed computes the dashboard view. matchesOnly overrides the user's
// toggle for this request when non-nil.
func (s *Service) Feed(ctx context.Context, userID string, f pipeline.Filters, matchesOnly *bool) (Feed, error) {
	in, err := s.input(ctx, userID)
	if err != nil {
		return Feed{}, err
	}
	if matchesOnly != nil {
		f.MatchesOnly = *matchesOnly
	} else {
		f.MatchesOnly = s.toggle.Resolve(userID, in.Preferences != nil)
	}

	jobs := pipeline.Compute(in, f)
	return Feed{
		Jobs:        jobs,
		Total:       len(jobs),
		MatchesOnly: f.MatchesOnly,
		Configured:  in.Preferences != nil,
	}, nil
}

// SavedJobs computes the saved view.
func (s *Service) SavedJobs(ctx context.Context, userID string, f pipeline.Filters) ([]pipeline.ScoredJob, error) {
	in, err := s.input(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pipeline.ComputeSaved(in, f), nil
}

// Job returns a single job annotated for the detail view.
func (s *Service) Job(ctx context.Context, userID, jobID string) (JobDetail, error) {
	job, ok := s.catalog.Job(jobID)
	if !ok {
		return JobDetail{}, apperr.NotFound("job not found", nil)
	}
	in, err := s.input(ctx, userID)
	if err != nil {
		return JobDetail{}, err
	}

	bd := scoring.Explain(job, in.Preferences)
	return JobDetail{
		ScoredJob: pipeline.ScoredJob{
			Job:    job,
			Score:  scoring.Score(job, in.Preferences),
			Status: ledger.StatusOf(in.Statuses, job.ID),
			Saved:  saved.Contains(in.Saved, job.ID),
		},
		Breakdown: bd,
	}, nil
}

// SetMatchesOnly records the user's explicit toggle choice.
func (s *Service) SetMatchesOnly(userID string, on bool) {
	s.toggle.Set(userID, on)
}

// ─── Actions ──────────────────────────────────────────────────────────────────

// SetStatus records a status transition. A job id that is not in the
// catalog is ignored and the current statuses are returned unchanged.
func (s *Service) SetStatus(ctx context.Context, userID, jobID string, status model.JobStatus) (map[string]model.JobStatus, error) {
	job, ok := s.catalog.Job(jobID)
	if !ok {
		s.logger.Info("status change for unknown job ignored",
			zap.String("userId", userID), zap.String("jobId", jobID))
		return s.Statuses(ctx, userID)
	}

	statuses, err := s.ledger.RecordTransition(ctx, userID, ledger.RefOf(job), status)
	if err != nil {
		return nil, apperr.Internal("record status", err)
	}

	s.events.StatusChanged(ctx, events.StatusChanged{
		UserID:  userID,
		JobID:   job.ID,
		Title:   job.Title,
		Company: job.Company,
		Status:  status,
		At:      s.now().UTC(),
	})
	return statuses, nil
}

// ToggleSaved flips the bookmark on jobID. A job id that is not in the
// catalog is ignored and the saved set is returned unchanged.
func (s *Service) ToggleSaved(ctx context.Context, userID, jobID string) (SavedResult, error) {
	if _, ok := s.catalog.Job(jobID); !ok {
		ids, err := s.saved.IDs(ctx, userID)
		if err != nil {
			return SavedResult{}, apperr.Internal("load saved jobs", err)
		}
		return SavedResult{JobID: jobID, Saved: saved.Contains(ids, jobID), IDs: ids}, nil
	}

	on, ids, err := s.saved.Toggle(ctx, userID, jobID)
	if err != nil {
		return SavedResult{}, apperr.Internal("toggle saved job", err)
	}
	return SavedResult{JobID: jobID, Saved: on, IDs: ids}, nil
}

// Statuses returns the user's current status map.
func (s *Service) Statuses(ctx context.Context, userID string) (map[string]model.JobStatus, error) {
	statuses, err := s.ledger.CurrentStatuses(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("load statuses", err)
	}
	return statuses, nil
}

// History returns the user's status history, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]model.StatusUpdate, error) {
	h, err := s.ledger.History(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("load status history", err)
	}
	return h, nil
}

// ─── Digest ───────────────────────────────────────────────────────────────────

// Today returns the current digest date key.
func (s *Service) Today() string {
	return digest.DateKey(s.now(), s.loc)
}

// Digest returns the digest state and, when ready, its entries.
func (s *Service) Digest(ctx context.Context, userID, date string) (DigestView, error) {
	st, err := s.digest.State(ctx, userID, date)
	if err != nil {
		return DigestView{}, apperr.Internal("load digest state", err)
	}
	view := DigestView{Date: date, State: st, Entries: []digest.Entry{}}
	if st != digest.StateReady {
		return view, nil
	}

	entries, ok, err := s.digest.Snapshot(ctx, userID, date)
	if err != nil {
		return DigestView{}, apperr.Internal("load digest", err)
	}
	if ok {
		view.Entries = entries
	}
	return view, nil
}

// GenerateDigest generates today's digest. It blocks for the configured
// latency.
func (s *Service) GenerateDigest(ctx context.Context, userID string) (DigestView, error) {
	date := s.Today()
	entries, err := s.digest.Generate(ctx, userID, date)
	switch {
	case errors.Is(err, digest.ErrUnconfigured):
		return DigestView{}, apperr.InvalidInput("set preferences before generating a digest", err)
	case errors.Is(err, digest.ErrGenerationInProgress):
		return DigestView{}, apperr.Conflict("digest generation already in progress", err)
	case err != nil:
		return DigestView{}, apperr.Internal("generate digest", err)
	}
	return DigestView{Date: date, State: digest.StateReady, Entries: entries}, nil
}

// ExportDigest renders a generated digest as plain text and a mailto URL.
func (s *Service) ExportDigest(ctx context.Context, userID, date string) (DigestExport, error) {
	entries, ok, err := s.digest.Snapshot(ctx, userID, date)
	if err != nil {
		return DigestExport{}, apperr.Internal("load digest", err)
	}
	if !ok {
		return DigestExport{}, apperr.NotFound("no digest generated for "+date, nil)
	}
	return DigestExport{
		Date:      date,
		Text:      digest.PlainText(date, entries),
		MailtoURL: digest.MailtoURL(date, entries),
	}, nil
}
