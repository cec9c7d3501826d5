package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	analyticsApp "github.com/felixgeelhaar/pytron/internal/analytics/application"
	backupApp "github.com/felixgeelhaar/pytron/internal/backup/application"
	backup "github.com/felixgeelhaar/pytron/internal/backup/domain"
	badgesApp "github.com/felixgeelhaar/pytron/internal/badges/application"
	badges "github.com/felixgeelhaar/pytron/internal/badges/domain"
	goalsApp "github.com/felixgeelhaar/pytron/internal/goals/application"
	goalsCommands "github.com/felixgeelhaar/pytron/internal/goals/application/commands"
	goalsQueries "github.com/felixgeelhaar/pytron/internal/goals/application/queries"
	goals "github.com/felixgeelhaar/pytron/internal/goals/domain"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// maxBodySize bounds JSON request bodies. Imports have their own limit.
const maxBodySize = 1 << 20

var errBadRequest = errors.New("bad request")

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerConfig holds dependencies for the handler.
type HandlerConfig struct {
	Tracking  *trackingApp.Service
	Analytics *analyticsApp.Service
	Badges    *badgesApp.Service
	Goals     *goalsApp.Service
	Backup    *backupApp.Service
	Store     Pinger
	Metrics   observability.Metrics
	Logger    *slog.Logger
}

// Handler serves the /api/v1 routes.
type Handler struct {
	tracking  *trackingApp.Service
	analytics *analyticsApp.Service
	badges    *badgesApp.Service
	goals     *goalsApp.Service
	backup    *backupApp.Service
	store     Pinger
	metrics   observability.Metrics
	logger    *slog.Logger
}

// NewHandler creates a new handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	return &Handler{
		tracking:  cfg.Tracking,
		analytics: cfg.Analytics,
		badges:    cfg.Badges,
		goals:     cfg.Goals,
		backup:    cfg.Backup,
		store:     cfg.Store,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// dateParam reads {date}; "today" selects the current day.
func dateParam(r *http.Request) (tracking.DateKey, error) {
	raw := chi.URLParam(r, "date")
	if raw == "today" {
		return "", nil
	}
	return tracking.ParseDateKey(raw)
}

func hourParam(r *http.Request) (int, error) {
	h, err := strconv.Atoi(chi.URLParam(r, "hour"))
	if err != nil {
		return 0, tracking.ErrInvalidHour
	}
	return h, nil
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "health check failed", "error", err)
			WriteProblem(w, r, http.StatusServiceUnavailable, "Storage unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// Dashboard handles GET /api/v1/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		MapError(w, r, err)
		return
	}
	h.metrics.Gauge(observability.MetricCurrentStreak, float64(d.Streak))
	writeJSON(w, http.StatusOK, d)
}

// Analytics handles GET /api/v1/analytics?days=N
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			MapError(w, r, fmt.Errorf("%w: days must be a number", errBadRequest))
			return
		}
		days = n
	}
	result, err := h.analytics.Range(r.Context(), days)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Day handles GET /api/v1/days/{date}
func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		MapError(w, r, err)
		return
	}
	day, err := h.analytics.Day(r.Context(), date)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

type logHourRequest struct {
	Category string `json:"category"`
	Note     string `json:"note"`
	TaskID   string `json:"taskId"`
}

// LogHour handles PUT /api/v1/days/{date}/hours/{hour}
func (h *Handler) LogHour(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		MapError(w, r, err)
		return
	}
	hour, err := hourParam(r)
	if err != nil {
		MapError(w, r, err)
		return
	}
	var req logHourRequest
	if err := decodeJSON(r, &req); err != nil {
		MapError(w, r, err)
		return
	}
	category, err := tracking.ParseCategory(req.Category)
	if err != nil {
		MapError(w, r, err)
		return
	}

	entry, err := h.tracking.LogHour(r.Context(), trackingApp.LogHourCommand{
		Date:     date,
		Hour:     hour,
		Category: category,
		Note:     req.Note,
		TaskID:   req.TaskID,
	})
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ClearHour handles DELETE /api/v1/days/{date}/hours/{hour}
func (h *Handler) ClearHour(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		MapError(w, r, err)
		return
	}
	hour, err := hourParam(r)
	if err != nil {
		MapError(w, r, err)
		return
	}
	if err := h.tracking.ClearHour(r.Context(), date, hour); err != nil {
		MapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTasks handles GET /api/v1/tasks
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracking.Tasks())
}

type addTaskRequest struct {
	Text     string `json:"text"`
	DueTime  string `json:"dueTime"`
	Priority string `json:"priority"`
	Duration string `json:"duration"`
	Tag      string `json:"tag"`
}

// AddTask handles POST /api/v1/tasks
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		MapError(w, r, err)
		return
	}
	priority, err := tracking.ParsePriority(req.Priority)
	if err != nil {
		MapError(w, r, err)
		return
	}
	task, err := h.tracking.AddTask(r.Context(), trackingApp.AddTaskCommand{
		Text: req.Text,
		Meta: tracking.TaskMeta{
			DueTime:  req.DueTime,
			Priority: priority,
			Duration: req.Duration,
			Tag:      req.Tag,
		},
	})
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// ToggleTask handles POST /api/v1/tasks/{id}/toggle
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tracking.ToggleTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/v1/tasks/{id}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tracking.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		MapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type badgesResponse struct {
	Badges   []badges.View `json:"badges"`
	Unlocked int           `json:"unlocked"`
	Total    int           `json:"total"`
}

// Badges handles GET /api/v1/badges
func (h *Handler) Badges(w http.ResponseWriter, r *http.Request) {
	views, err := h.badges.List(r.Context())
	if err != nil {
		MapError(w, r, err)
		return
	}
	summary, err := h.badges.Summary(r.Context())
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badgesResponse{Badges: views, Unlocked: summary.Unlocked, Total: summary.Total})
}

// ListGoals handles GET /api/v1/goals?status=active|completed
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	status := goalsQueries.GoalStatus(r.URL.Query().Get("status"))
	switch status {
	case goalsQueries.StatusAll, goalsQueries.StatusActive, goalsQueries.StatusCompleted:
	default:
		MapError(w, r, fmt.Errorf("%w: unknown status %q", errBadRequest, status))
		return
	}
	views, err := h.goals.List(r.Context(), goalsQueries.ListGoalsQuery{Status: status})
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

type createGoalRequest struct {
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	Target   float64 `json:"target"`
	Category *string `json:"category"`
	Deadline *string `json:"deadline"`
}

// CreateGoal handles POST /api/v1/goals
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		MapError(w, r, err)
		return
	}
	goalType, err := goals.ParseGoalType(req.Type)
	if err != nil {
		MapError(w, r, err)
		return
	}
	cmd := goalsCommands.CreateGoalCommand{Title: req.Title, Type: goalType, Target: req.Target}
	if req.Category != nil {
		c, err := tracking.ParseCategory(*req.Category)
		if err != nil {
			MapError(w, r, err)
			return
		}
		cmd.Category = &c
	}
	if req.Deadline != nil {
		d, err := tracking.ParseDateKey(*req.Deadline)
		if err != nil {
			MapError(w, r, err)
			return
		}
		cmd.Deadline = &d
	}

	goal, err := h.goals.Create(r.Context(), cmd)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goalsQueries.GoalView{Goal: goal, Progress: goal.ProgressPercent()})
}

// DeleteGoal handles DELETE /api/v1/goals/{id}
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.goals.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		MapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func formatParam(r *http.Request) (backup.Format, error) {
	return backup.ParseFormat(r.URL.Query().Get("format"))
}

// Export handles GET /api/v1/export?format=json|yaml
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		MapError(w, r, err)
		return
	}
	contentType := "application/json"
	if format == backup.FormatYAML {
		contentType = "application/yaml"
	}
	filename := fmt.Sprintf("pytron-backup-%s.%s", tracking.DateKeyOf(h.tracking.Now()), format)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.backup.Export(r.Context(), w, format); err != nil {
		// Headers are sent once the body starts; only log.
		h.logger.ErrorContext(r.Context(), "export failed", "error", err)
	}
}

// Import handles POST /api/v1/import?format=json|yaml
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		MapError(w, r, err)
		return
	}
	result, err := h.backup.Import(r.Context(), r.Body, format)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
