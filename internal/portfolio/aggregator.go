package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kalambet/ghfolio/internal/github"
)

const (
	// ConfigRepository and ConfigPath locate portfolio.json for a handle.
	ConfigRepository = "config"
	ConfigPath       = "portfolio.json"

	repoPageSize = 20
	repoSort     = "updated"
)

var (
	// ErrProfileNotFound is the fatal outcome for an unknown or hidden handle.
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyHandle     = errors.New("handle is required")
)

// Source is the subset of the GitHub client the aggregator needs.
// Implemented by github.Client.
type Source interface {
	GetUser(ctx context.Context, login string) (github.Profile, error)
	ListRepositories(ctx context.Context, login string, opts github.ListOptions) ([]github.Repository, error)
	GetContents(ctx context.Context, owner, repo, path string) (github.Contents, error)
}

// Bundle is everything fetched for one page view. Repositories is already
// filtered; Config is nil when the handle has no usable portfolio.json.
type Bundle struct {
	Handle       string
	Profile      github.Profile
	Repositories []github.Repository
	Config       *Config
}

// Aggregator fetches and merges the data for a handle.
type Aggregator struct {
	source Source
	logger *slog.Logger
}

// NewAggregator creates an Aggregator reading from src.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{source: src, logger: slog.Default()}
}

// Aggregate fetches profile, repositories and configuration concurrently.
//
// Only a profile failure is returned as an error. Repository failures
// degrade to an empty list and configuration failures to a nil Config.
func (a *Aggregator) Aggregate(ctx context.Context, handle string) (Bundle, error) {
	if strings.TrimSpace(handle) == "" {
		return Bundle{}, ErrEmptyHandle
	}

	var (
		profile github.Profile
		repos   []github.Repository
		cfg     *Config
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := a.source.GetUser(gCtx, handle)
		if err != nil {
			if errors.Is(err, github.ErrNotFound) {
				return fmt.Errorf("%w: %w", ErrProfileNotFound, err)
			}
			return fmt.Errorf("fetching profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		repos = a.fetchRepositories(gCtx, handle)
		return nil
	})
	g.Go(func() error {
		cfg = a.fetchConfig(gCtx, handle)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}

	return Bundle{
		Handle:       handle,
		Profile:      profile,
		Repositories: FilterRepositories(handle, repos),
		Config:       cfg,
	}, nil
}

func (a *Aggregator) fetchRepositories(ctx context.Context, handle string) []github.Repository {
	repos, err := a.source.ListRepositories(ctx, handle, github.ListOptions{Sort: repoSort, PerPage: repoPageSize})
	if err != nil {
		// Cancelled by a failed profile fetch or by the caller; nothing is rendered.
		if ctx.Err() != nil {
			return nil
		}
		a.logger.Warn("repository list unavailable, continuing without repositories", "handle", handle, "error", err)
		return nil
	}
	return repos
}

func (a *Aggregator) fetchConfig(ctx context.Context, handle string) *Config {
	contents, err := a.source.GetContents(ctx, handle, ConfigRepository, ConfigPath)
	if err != nil {
		a.logger.Debug("portfolio config unavailable", "handle", handle, "error", err)
		return nil
	}
	cfg, err := DecodeConfig(contents.Content)
	if err != nil {
		a.logger.Debug("portfolio config unavailable", "handle", handle, "error", err)
		return nil
	}
	return cfg
}
