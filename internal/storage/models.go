package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Lookup outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Lookup is one portfolio page view. Only the handle and the outcome are
// kept; fetched profile and repository data is never stored.
type Lookup struct {
	ID         string    `json:"id"`
	Handle     string    `json:"handle"`
	Outcome    string    `json:"outcome"`
	HasConfig  bool      `json:"has_config"`
	DurationMs int64     `json:"duration_ms"`
	LookedUpAt time.Time `json:"looked_up_at"`
}
