// Package domain defines the export bundle and its JSON and YAML encodings.
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Version is written into every export.
const Version = "1.0"

var (
	ErrInvalidBundle     = errors.New("invalid backup")
	ErrUnsupportedFormat = errors.New("unsupported backup format")
)

// Bundle is a full-state export. On import, absent fields are left alone.
type Bundle struct {
	Version    string             `json:"version"`
	ExportDate time.Time          `json:"exportDate"`
	Data       tracking.LogStore  `json:"data"`
	Tasks      tracking.TaskList  `json:"tasks"`
	Settings   *tracking.Settings `json:"settings"`
}

// NewBundle snapshots state.
func NewBundle(state tracking.State, at time.Time) Bundle {
	settings := state.Settings
	tasks := state.Tasks.Clone()
	if tasks == nil {
		tasks = tracking.TaskList{}
	}
	return Bundle{
		Version:    Version,
		ExportDate: at.UTC(),
		Data:       state.Log.Clone(),
		Tasks:      tasks,
		Settings:   &settings,
	}
}

// Validate rejects bundles that carry nothing or whose present fields could
// not have been produced by pytron.
func (b Bundle) Validate() error {
	if b.Data == nil && b.Tasks == nil && b.Settings == nil {
		return fmt.Errorf("%w: no data, tasks or settings", ErrInvalidBundle)
	}
	if b.Data != nil {
		if n := b.Data.Clone().Sanitize(); n > 0 {
			return fmt.Errorf("%w: %d log entries have an invalid date, hour or category", ErrInvalidBundle, n)
		}
	}
	seen := make(map[string]bool, len(b.Tasks))
	for i, t := range b.Tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task %d has no id", ErrInvalidBundle, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate task id %s", ErrInvalidBundle, t.ID)
		}
		seen[t.ID] = true
	}
	if b.Settings != nil {
		if err := b.Settings.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBundle, err)
		}
	}
	return nil
}

// Format is an encoding of a bundle.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Encode writes the bundle in the given format. YAML output carries the
// same field names as JSON.
func Encode(b Bundle, f Format) ([]byte, error) {
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	switch f {
	case FormatJSON:
		return raw, nil
	case FormatYAML:
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("failed to encode backup: %w", err)
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("failed to encode backup as yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Decode parses and validates a bundle.
func Decode(raw []byte, f Format) (Bundle, error) {
	if f == FormatYAML {
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
		}
		converted, err := json.Marshal(normalize(generic))
		if err != nil {
			return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
		}
		raw = converted
	} else if f != FormatJSON {
		return Bundle{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var b Bundle
	if err := dec.Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// normalize turns YAML maps with non-string keys, such as bare hour
// numbers, into string-keyed maps JSON can encode.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}
