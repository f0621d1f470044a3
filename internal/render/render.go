// Package render turns portfolio views into HTML pages.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/kalambet/ghfolio/internal/portfolio"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{"home", "portfolio", "error"}

// PageContext carries the per-request inputs every page needs.
type PageContext struct {
	Lang         language.Tag
	CurrentPath  string
	CurrentQuery string
}

// ContextFromRequest resolves the language for r and records its path and
// query for the language switcher. The bool reports whether the language
// came from ?lang= and should be persisted.
func ContextFromRequest(r *http.Request) (PageContext, bool) {
	tag, persist := ResolveTag(r)
	pc := PageContext{Lang: tag}
	if r != nil {
		pc.CurrentPath = r.URL.Path
		pc.CurrentQuery = r.URL.RawQuery
	}
	return pc, persist
}

// Page is the data every template executes against.
type Page struct {
	Lang        string
	Title       string
	Description string
	Canonical   string
	Image       string
	OGType      string
	Languages   []LanguageOption

	View    *portfolio.View
	Theme   PageTheme
	Recent  []string
	Example string
	Sample  string

	Status  int
	Message string
	Detail  string

	loc Localizer
}

// T formats a catalog message in the page language.
func (p Page) T(key string, args ...any) string { return p.loc.T(key, args...) }

// N formats a count in the page language.
func (p Page) N(n int) string { return p.loc.N(n) }

// Year formats a year without digit grouping.
func (p Page) Year(y int) string { return strconv.Itoa(y) }

// Renderer holds the parsed page templates.
type Renderer struct {
	pages   map[string]*template.Template
	siteURL string
}

// New parses the embedded templates. siteURL, when set, is prefixed to
// canonical and Open Graph URLs.
func New(siteURL string) (*Renderer, error) {
	base, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages, siteURL: strings.TrimRight(siteURL, "/")}, nil
}

func (r *Renderer) page(pc PageContext) Page {
	loc := NewLocalizer(pc.Lang)
	return Page{
		Lang:      pc.Lang.String(),
		OGType:    "website",
		Languages: languageOptions(loc, pc.CurrentPath, pc.CurrentQuery),
		loc:       loc,
	}
}

func (r *Renderer) absolute(path string) string {
	return r.siteURL + path
}

// Home renders the landing page with the handle form.
func (r *Renderer) Home(pc PageContext, recent []string) templ.Component {
	p := r.page(pc)
	p.Title = p.T("site.name")
	p.Description = p.T("home.lead")
	p.Canonical = r.absolute("/")
	p.Recent = recent
	p.Example = "octocat"
	p.Sample = sampleConfig
	return templ.FromGoHTML(r.pages["home"], p)
}

// Portfolio renders one handle's portfolio page.
func (r *Renderer) Portfolio(pc PageContext, v portfolio.View) templ.Component {
	p := r.page(pc)
	p.Title, p.Description = Metadata(p.loc, v)
	p.Canonical = r.absolute("/" + url.PathEscape(v.Handle))
	p.Image = v.AvatarURL
	p.OGType = "profile"
	p.View = &v
	p.Theme = pageTheme(v.Theme)
	return templ.FromGoHTML(r.pages["portfolio"], p)
}

// Error renders the failure page for handle. A 404 status reports an unknown
// user; anything else reports that the profile could not be loaded, followed
// by detail when it is set.
func (r *Renderer) Error(pc PageContext, status int, handle, detail string) templ.Component {
	p := r.page(pc)
	p.Status = status
	p.Detail = detail
	if status == http.StatusNotFound {
		p.Message = p.T("error.not_found", handle)
	} else {
		p.Message = p.T("error.unavailable")
	}
	p.Title = p.T("meta.title", handle)
	p.Description = p.T("meta.description", handle)
	return templ.FromGoHTML(r.pages["error"], p)
}

// Metadata returns the page title and description for v.
func Metadata(loc Localizer, v portfolio.View) (title, description string) {
	title = loc.T("meta.title", v.DisplayName)
	description = v.Bio
	if description == "" {
		description = loc.T("meta.description", v.DisplayName)
	}
	return title, description
}

const sampleConfig = `{
  "theme": {
    "primaryColor": "#3B82F6",
    "backgroundColor": "#F8FAFC",
    "textColor": "#1E293B"
  },
  "sections": {
    "about": "...",
    "skills": ["Go", "PostgreSQL", "Kubernetes"],
    "featured": ["repo1", "repo2", "repo3"],
    "experience": [
      {"title": "Engineer", "company": "Acme", "period": "2021 - now", "highlights": ["..."]}
    ]
  },
  "social": {
    "linkedin": "your-linkedin",
    "website": "https://example.com"
  }
}`
