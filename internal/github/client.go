package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second
	maxBodySize    = 5 << 20 // 5MB
	apiVersion     = "2022-11-28"
	tracerName     = "github.com/kalambet/ghfolio/internal/github"
)

// ErrNotFound is returned (wrapped) when GitHub answers 404.
var ErrNotFound = errors.New("not found")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("github: unexpected status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to the unauthenticated GitHub REST API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New creates a Client. An empty baseURL selects DefaultBaseURL and a
// non-positive timeout selects 10s.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "ghfolio",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetUser fetches the public profile for login.
func (c *Client) GetUser(ctx context.Context, login string) (Profile, error) {
	var p Profile
	if err := c.getJSON(ctx, "GetUser", "/users/"+url.PathEscape(login), nil, &p); err != nil {
		return Profile{}, err
	}
	if p.Login == "" {
		return Profile{}, fmt.Errorf("decoding profile: missing login")
	}
	return p, nil
}

// ListRepositories fetches the first page of public repositories owned by login.
func (c *Client) ListRepositories(ctx context.Context, login string, opts ListOptions) ([]Repository, error) {
	q := url.Values{}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}

	var repos []Repository
	if err := c.getJSON(ctx, "ListRepositories", "/users/"+url.PathEscape(login)+"/repos", q, &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		return []Repository{}, nil
	}
	return repos, nil
}

// GetContents fetches a single file from a repository.
func (c *Client) GetContents(ctx context.Context, owner, repo, path string) (Contents, error) {
	p := fmt.Sprintf("/repos/%s/%s/contents/%s", url.PathEscape(owner), url.PathEscape(repo), escapePath(path))
	var out Contents
	if err := c.getJSON(ctx, "GetContents", p, nil, &out); err != nil {
		return Contents{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, v any) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "github."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("github.path", path)),
	)
	defer span.End()

	err := c.doGetJSON(ctx, span, path, query, v)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) doGetJSON(ctx context.Context, span trace.Span, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// readErrorMessage extracts {"message": "..."} from a GitHub error body.
func readErrorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}

func escapePath(p string) string {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
