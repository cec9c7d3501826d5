package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	analyticsApp "github.com/felixgeelhaar/pytron/internal/analytics/application"
	backup "github.com/felixgeelhaar/pytron/internal/backup/domain"
	goals "github.com/felixgeelhaar/pytron/internal/goals/domain"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

var problemTypes = map[int]struct {
	typeURI string
	title   string
}{
	http.StatusBadRequest: {
		typeURI: "https://pytron.dev/errors/bad-request",
		title:   "Bad Request",
	},
	http.StatusUnauthorized: {
		typeURI: "https://pytron.dev/errors/unauthorized",
		title:   "Unauthorized",
	},
	http.StatusNotFound: {
		typeURI: "https://pytron.dev/errors/not-found",
		title:   "Not Found",
	},
	http.StatusConflict: {
		typeURI: "https://pytron.dev/errors/conflict",
		title:   "Conflict",
	},
	http.StatusRequestEntityTooLarge: {
		typeURI: "https://pytron.dev/errors/too-large",
		title:   "Request Entity Too Large",
	},
	http.StatusUnprocessableEntity: {
		typeURI: "https://pytron.dev/errors/validation-error",
		title:   "Validation Error",
	},
	http.StatusInternalServerError: {
		typeURI: "https://pytron.dev/errors/internal-error",
		title:   "Internal Server Error",
	},
	http.StatusServiceUnavailable: {
		typeURI: "https://pytron.dev/errors/service-unavailable",
		title:   "Service Unavailable",
	},
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt.typeURI = "about:blank"
		pt.title = http.StatusText(status)
	}

	p := Problem{
		Type:     pt.typeURI,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// validationErrors are caller mistakes reported with their own message.
var validationErrors = []error{
	tracking.ErrInvalidCategory,
	tracking.ErrInvalidHour,
	tracking.ErrInvalidDateKey,
	tracking.ErrEmptyTaskText,
	tracking.ErrInvalidDueTime,
	tracking.ErrInvalidPriority,
	tracking.ErrInvalidDuration,
	tracking.ErrInvalidTargetHours,
	tracking.ErrInvalidStreakThreshold,
	goals.ErrEmptyTitle,
	goals.ErrInvalidGoalType,
	goals.ErrInvalidTarget,
	goals.ErrCategoryMismatch,
	goals.ErrNotCustom,
	analyticsApp.ErrInvalidWindow,
	backup.ErrInvalidBundle,
	backup.ErrUnsupportedFormat,
}

// MapError converts domain errors to Problem Details responses.
func MapError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, tracking.ErrTaskNotFound), errors.Is(err, goals.ErrGoalNotFound):
		WriteProblem(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, trackingApp.ErrHourOccupied):
		WriteProblem(w, r, http.StatusConflict, err.Error())
	case isValidationError(err):
		WriteProblem(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		// Never expose internal error details to the client.
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
