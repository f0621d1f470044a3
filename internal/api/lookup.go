package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kalambet/ghfolio/internal/portfolio"
	"github.com/kalambet/ghfolio/internal/storage"
)

const tracerName = "github.com/kalambet/ghfolio/internal/api"

// Loader fetches everything needed to render one handle.
type Loader interface {
	Aggregate(ctx context.Context, handle string) (portfolio.Bundle, error)
}

// LookupStore persists the lookup log.
type LookupStore interface {
	SaveLookup(l storage.Lookup) error
	GetLookup(id string) (storage.Lookup, error)
	ListLookups(limit, offset int) ([]storage.Lookup, error)
	RecentHandles(limit int) ([]string, error)
}

// lookupView loads and derives the view for handle and records the outcome
// in lookups when it is non-nil. Recording failures are logged, not returned.
func lookupView(ctx context.Context, loader Loader, lookups LookupStore, handle string) (portfolio.View, error) {
	handle = strings.TrimSpace(handle)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "portfolio.lookup")
	defer span.End()
	span.SetAttributes(attribute.String("portfolio.handle", handle))

	start := time.Now()
	b, err := loader.Aggregate(ctx, handle)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if lookups != nil && !errors.Is(err, portfolio.ErrEmptyHandle) {
		l := storage.Lookup{
			ID:         uuid.New().String(),
			Handle:     handle,
			Outcome:    outcomeFor(err),
			HasConfig:  err == nil && b.Config != nil,
			DurationMs: elapsed.Milliseconds(),
			LookedUpAt: time.Now().UTC(),
		}
		if saveErr := lookups.SaveLookup(l); saveErr != nil {
			slog.Warn("failed to record lookup", "handle", handle, "error", saveErr)
		}
	}

	if err != nil {
		return portfolio.View{}, err
	}

	slog.Debug("portfolio loaded",
		"handle", handle,
		"repositories", len(b.Repositories),
		"has_config", b.Config != nil,
		"duration_ms", elapsed.Milliseconds(),
	)
	return portfolio.Derive(b), nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return storage.OutcomeOK
	case errors.Is(err, portfolio.ErrProfileNotFound):
		return storage.OutcomeNotFound
	default:
		return storage.OutcomeError
	}
}

// statusFor maps a lookup error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrEmptyHandle):
		return http.StatusBadRequest
	case errors.Is(err, portfolio.ErrProfileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
