package mcp

import (
	"errors"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

var errNoStorage = errors.New("tool requires a wired application")

// parseDate accepts YYYY-MM-DD; empty means today.
func parseDate(value string) (tracking.DateKey, error) {
	if value == "" || value == "today" {
		return "", nil
	}
	return tracking.ParseDateKey(value)
}

func parseOptionalDate(value string) (*tracking.DateKey, error) {
	if value == "" {
		return nil, nil
	}
	d, err := tracking.ParseDateKey(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
