package dashboard

// HTTP handlers for the dashboard service.
//
// User-scoped routes expect an x-user-id header forwarded by the Gateway.
//
// Routes (under /api/v1):
//
//	GET  /catalog/options          → closed value sets for settings forms
//	GET  /preferences              → current preferences (null when unset)
//	PUT  /preferences              → replace preferences
//	GET  /jobs                     → dashboard feed
//	GET  /jobs/:id                 → job detail with score breakdown
//	POST /jobs/:id/status          → record a status transition
//	GET  /saved                    → saved jobs
//	POST /saved/:id/toggle         → save / unsave a job
//	GET  /statuses                 → current status per job
//	GET  /statuses/history         → status history, newest first
//	PUT  /session/matches-only     → explicit "matches only" choice
//	GET  /digest                   → digest state and entries (?date=YYYY-MM-DD)
//	POST /digest/generate          → generate today's digest
//	GET  /digest/export            → digest as plain text and mailto URL

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jobmate/dashboard-service/internal/apperr"
	"jobmate/dashboard-service/internal/model"
	"jobmate/dashboard-service/internal/pipeline"
	"jobmate/dashboard-service/internal/server/middleware"
	"jobmate/dashboard-service/internal/server/respond"
)

// Handler exposes a Service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the dashboard routes on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/options", h.options)

	u := rg.Group("", middleware.RequireUser())
	u.GET("/preferences", h.getPreferences)
	u.PUT("/preferences", h.putPreferences)
	u.GET("/jobs", h.listJobs)
	u.GET("/jobs/:id", h.getJob)
	u.POST("/jobs/:id/status", h.setStatus)
	u.GET("/saved", h.listSaved)
	u.POST("/saved/:id/toggle", h.toggleSaved)
	u.GET("/statuses", h.getStatuses)
	u.GET("/statuses/history", h.getHistory)
	u.PUT("/session/matches-only", h.setMatchesOnly)
	u.GET("/digest", h.getDigest)
	u.POST("/digest/generate", h.generateDigest)
	u.GET("/digest/export", h.exportDigest)
}

// ─── Request types ────────────────────────────────────────────────────────────

type statusRequest struct {
	Status string `json:"status"`
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// ─── Preferences ──────────────────────────────────────────────────────────────

func (h *Handler) options(c *gin.Context) {
	respond.OK(c, h.svc.Options())
}

func (h *Handler) getPreferences(c *gin.Context) {
	p, err := h.svc.Preferences(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"preferences": p, "configured": p != nil})
}

func (h *Handler) putPreferences(c *gin.Context) {
	var p model.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.FromError(c, apperr.InvalidInput("invalid preferences body", err))
		return
	}
	if err := validatePreferences(p); err != nil {
		respond.FromError(c, err)
		return
	}

	if err := h.svc.SavePreferences(c.Request.Context(), middleware.UserIDFromContext(c), p); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"preferences": p, "configured": true})
}

// ─── Views ────────────────────────────────────────────────────────────────────

func (h *Handler) listJobs(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	var matchesOnly *bool
	if raw, ok := c.GetQuery("matchesOnly"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respond.FromError(c, apperr.InvalidInput("matchesOnly must be true or false", err))
			return
		}
		matchesOnly = &v
	}

	feed, err := h.svc.Feed(c.Request.Context(), middleware.UserIDFromContext(c), f, matchesOnly)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, feed)
}

func (h *Handler) getJob(c *gin.Context) {
	job, err := h.svc.Job(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, job)
}

func (h *Handler) listSaved(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	jobs, err := h.svc.SavedJobs(c.Request.Context(), middleware.UserIDFromContext(c), f)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"jobs": jobs, "total": len(jobs)})
}

func (h *Handler) setMatchesOnly(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		respond.FromError(c, apperr.InvalidInput(`body must be {"enabled": true|false}`, err))
		return
	}
	h.svc.SetMatchesOnly(middleware.UserIDFromContext(c), *req.Enabled)
	respond.OK(c, gin.H{"matchesOnly": *req.Enabled})
}

// ─── Actions ──────────────────────────────────────────────────────────────────

func (h *Handler) setStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.FromError(c, apperr.InvalidInput("invalid status body", err))
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		respond.FromError(c, apperr.InvalidInput(err.Error(), err))
		return
	}

	statuses, err := h.svc.SetStatus(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), status)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"statuses": statuses})
}

func (h *Handler) toggleSaved(c *gin.Context) {
	res, err := h.svc.ToggleSaved(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, res)
}

func (h *Handler) getStatuses(c *gin.Context) {
	statuses, err := h.svc.Statuses(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"statuses": statuses})
}

func (h *Handler) getHistory(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"history": history})
}

// ─── Digest ───────────────────────────────────────────────────────────────────

func (h *Handler) getDigest(c *gin.Context) {
	date, err := h.dateParam(c)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	view, err := h.svc.Digest(c.Request.Context(), middleware.UserIDFromContext(c), date)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) generateDigest(c *gin.Context) {
	view, err := h.svc.GenerateDigest(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) exportDigest(c *gin.Context) {
	date, err := h.dateParam(c)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	export, err := h.svc.ExportDigest(c.Request.Context(), middleware.UserIDFromContext(c), date)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, export)
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// dateParam returns ?date=YYYY-MM-DD, defaulting to today.
func (h *Handler) dateParam(c *gin.Context) (string, error) {
	raw := c.Query("date")
	if raw == "" {
		return h.svc.Today(), nil
	}
	if _, err := time.Parse(time.DateOnly, raw); err != nil {
		return "", apperr.InvalidInput("date must be YYYY-MM-DD", err)
	}
	return raw, nil
}

// validatePreferences checks every closed-set field. Free-text fields
// (keywords, skills) are stored as given.
func validatePreferences(p model.Preferences) error {
	for _, l := range p.Locations {
		if _, err := model.ParseLocation(l); err != nil {
			return apperr.InvalidInput(err.Error(), err)
		}
	}
	for _, m := range p.Modes {
		if _, err := model.ParseMode(string(m)); err != nil {
			return apperr.InvalidInput(err.Error(), err)
		}
	}
	if p.Experience != "" {
		if _, err := model.ParseExperience(string(p.Experience)); err != nil {
			return apperr.InvalidInput(err.Error(), err)
		}
	}
	return nil
}

// parseFilters reads the shared filter query parameters. Values must match
// the closed sets exactly; empty means no filter.
func parseFilters(c *gin.Context) (pipeline.Filters, error) {
	f := pipeline.Filters{Keyword: c.Query("q")}

	if v := c.Query("location"); v != "" {
		loc, err := model.ParseLocation(v)
		if err != nil {
			return f, apperr.InvalidInput(err.Error(), err)
		}
		f.Location = loc
	}
	if v := c.Query("mode"); v != "" {
		m, err := model.ParseMode(v)
		if err != nil {
			return f, apperr.InvalidInput(err.Error(), err)
		}
		f.Mode = m
	}
	if v := c.Query("experience"); v != "" {
		e, err := model.ParseExperience(v)
		if err != nil {
			return f, apperr.InvalidInput(err.Error(), err)
		}
		f.Experience = e
	}
	if v := c.Query("source"); v != "" {
		s, err := model.ParseSource(v)
		if err != nil {
			return f, apperr.InvalidInput(err.Error(), err)
		}
		f.Source = s
	}
	if v := c.Query("status"); v != "" {
		s, err := model.ParseStatus(v)
		if err != nil {
			return f, apperr.InvalidInput(err.Error(), err)
		}
		f.Status = s
	}

	sort, err := pipeline.ParseSort(c.Query("sort"))
	if err != nil {
		return f, apperr.InvalidInput(err.Error(), err)
	}
	f.Sort = sort
	return f, nil
}
