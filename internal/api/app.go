package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kalambet/ghfolio/internal/render"
	"github.com/kalambet/ghfolio/internal/storage"
)

const recentHandlesOnHome = 10

type AppDeps struct {
	Portfolios Loader
	Lookups    LookupStore // optional; if nil, lookups are neither recorded nor listed
	Renderer   *render.Renderer
}

// NewAppHandler returns the HTTP surface: HTML pages, the JSON API and health.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/health", handleHealth)
	r.Get("/favicon.ico", http.NotFound)
	r.Get("/", handleHome(deps))
	r.Get("/go", handleGo)
	r.Get("/api/portfolios/{handle}", handlePortfolioJSON(deps))
	r.Get("/api/lookups", handleListLookups(deps))
	r.Get("/api/lookups/{id}", handleGetLookup(deps))
	r.Get("/{handle}", handlePortfolioPage(deps))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func pageContext(w http.ResponseWriter, r *http.Request) render.PageContext {
	pc, persist := render.ContextFromRequest(r)
	if persist {
		render.SetLanguageCookie(w, pc.Lang)
	}
	return pc
}

func handleHome(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pc := pageContext(w, r)

		var recent []string
		if deps.Lookups != nil {
			handles, err := deps.Lookups.RecentHandles(recentHandlesOnHome)
			if err != nil {
				slog.Warn("failed to load recent handles", "error", err)
			}
			recent = handles
		}

		templ.Handler(deps.Renderer.Home(pc, recent)).ServeHTTP(w, r)
	}
}

// handleGo turns the landing form submission into a portfolio URL.
func handleGo(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(r.URL.Query().Get("handle"))
	if handle == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/"+url.PathEscape(handle), http.StatusSeeOther)
}

func handlePortfolioPage(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pc := pageContext(w, r)
		handle := chi.URLParam(r, "handle")

		v, err := lookupView(r.Context(), deps.Portfolios, deps.Lookups, handle)
		if err != nil {
			status := statusFor(err)
			var detail string
			if status == http.StatusBadGateway {
				slog.Warn("portfolio lookup failed", "handle", handle, "error", err)
				detail = err.Error()
			}
			templ.Handler(deps.Renderer.Error(pc, status, handle, detail), templ.WithStatus(status)).ServeHTTP(w, r)
			return
		}

		templ.Handler(deps.Renderer.Portfolio(pc, v)).ServeHTTP(w, r)
	}
}

func handlePortfolioJSON(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := chi.URLParam(r, "handle")

		v, err := lookupView(r.Context(), deps.Portfolios, deps.Lookups, handle)
		if err != nil {
			switch status := statusFor(err); status {
			case http.StatusBadRequest:
				httpError(w, status, "invalid_request_error", "handle is required")
			case http.StatusNotFound:
				httpError(w, status, "not_found", "profile %q not found", strings.TrimSpace(handle))
			default:
				httpError(w, status, "upstream_error", "failed to load portfolio: %v", err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
}

func handleListLookups(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Lookups == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "lookup log is not enabled")
			return
		}

		limit := parseIntParam(r, "limit", 20, 100)
		offset := parseIntParam(r, "offset", 0, 0)

		lookups, err := deps.Lookups.ListLookups(limit, offset)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list lookups: %v", err)
			return
		}

		if lookups == nil {
			lookups = []storage.Lookup{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(lookups)
	}
}

func handleGetLookup(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Lookups == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "lookup log is not enabled")
			return
		}

		id := chi.URLParam(r, "id")
		l, err := deps.Lookups.GetLookup(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "lookup %q not found", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get lookup: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(l)
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
