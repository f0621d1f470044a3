package render

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/kalambet/ghfolio/internal/portfolio"
)

func newTestRenderer(t *testing.T, siteURL string) *Renderer {
	t.Helper()
	r, err := New(siteURL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func sampleView() portfolio.View {
	return portfolio.View{
		Handle:      "octocat",
		DisplayName: "The Octocat",
		AvatarURL:   "https://avatars.example/octocat.png",
		Bio:         "GitHub mascot",
		MemberSince: 2011,
		PublicRepos: 1234,
		Followers:   10,
		TotalStars:  28,
		Theme:       portfolio.ThemeColors{Primary: "#111111", Background: "#F8FAFC"},
		Social: portfolio.Links{
			GitHub:   "https://github.com/octocat",
			LinkedIn: "https://linkedin.com/in/octo",
		},
		Skills: []portfolio.Skill{{Label: "Go", Count: 2}},
		Featured: []portfolio.RepoCard{
			{Name: "hello-world", URL: "https://github.com/octocat/hello-world", Language: "Go", Stars: 5, Topics: []string{"demo"}},
		},
		HasMoreRepos: true,
		Experience:   []portfolio.Experience{{Title: "Mascot", Company: "GitHub", Period: "2008 - now", Highlights: []string{"Waving"}}},
	}
}

func TestPortfolio_English(t *testing.T) {
	r := newTestRenderer(t, "https://folio.example/")
	html := renderString(t, r.Portfolio(PageContext{Lang: language.English, CurrentPath: "/octocat"}, sampleView()))

	for _, want := range []string{
		`<html lang="en">`,
		`<title>The Octocat | Portfolio</title>`,
		`<meta name="description" content="GitHub mascot">`,
		`<link rel="canonical" href="https://folio.example/octocat">`,
		`<meta property="og:type" content="profile">`,
		`<meta property="og:image" content="https://avatars.example/octocat.png">`,
		`Member since 2011`,
		`1,234`,
		`Top technologies`,
		`Go (2)`,
		`hello-world`,
		`See all 1,234 repositories on GitHub`,
		`https://linkedin.com/in/octo`,
		`Mascot`,
		`Waving`,
		`#111111`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPortfolio_Portuguese(t *testing.T) {
	r := newTestRenderer(t, "")
	html := renderString(t, r.Portfolio(PageContext{Lang: language.BrazilianPortuguese}, sampleView()))

	for _, want := range []string{
		`<title>The Octocat | Portfólio</title>`,
		`Membro desde 2011`,
		`1.234`,
		`Principais Tecnologias`,
		`Projetos em Destaque`,
		`Ver todos os 1.234 repositórios no GitHub`,
		`<link rel="canonical" href="/octocat">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPortfolio_ConfigSkillsHaveNoCounts(t *testing.T) {
	v := sampleView()
	v.SkillsFromConfig = true
	v.Skills = []portfolio.Skill{{Label: "Kubernetes"}}

	html := renderString(t, newTestRenderer(t, "").Portfolio(PageContext{Lang: language.English}, v))
	if !strings.Contains(html, `<span class="badge">Kubernetes</span>`) {
		t.Errorf("config skill not rendered verbatim")
	}
}

func TestPortfolio_OptionalSectionsOmitted(t *testing.T) {
	v := sampleView()
	v.Experience = []portfolio.Experience{}
	v.HasMoreRepos = false
	v.Bio = ""

	html := renderString(t, newTestRenderer(t, "").Portfolio(PageContext{Lang: language.English}, v))
	if strings.Contains(html, `id="experience"`) {
		t.Error("experience section rendered without entries")
	}
	if strings.Contains(html, "See all") {
		t.Error("see-all link rendered without more repositories")
	}
	if !strings.Contains(html, `content="Portfolio of The Octocat on GitHub"`) {
		t.Error("description did not fall back to the generated text")
	}
}

func TestPortfolio_EscapesUntrustedValues(t *testing.T) {
	v := sampleView()
	v.Bio = `<script>alert(1)</script>`
	v.Social.Website = "javascript:alert(1)"
	v.Theme.Primary = "red;}</style><script>"

	html := renderString(t, newTestRenderer(t, "").Portfolio(PageContext{Lang: language.English}, v))
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("bio was not escaped")
	}
	if strings.Contains(html, `href="javascript:alert(1)"`) {
		t.Error("unsafe website URL was not filtered")
	}
	if strings.Contains(html, "</style><script>") {
		t.Error("theme color escaped its CSS context")
	}
}

func TestPortfolio_FunctionalThemeColors(t *testing.T) {
	v := sampleView()
	v.Theme = portfolio.ThemeColors{Primary: "rgb(17,17,17)", Background: "hsl(0, 0%, 98%)", Text: "darkslategray"}

	html := renderString(t, newTestRenderer(t, "").Portfolio(PageContext{Lang: language.English}, v))
	if strings.Contains(html, "ZgotmplZ") {
		t.Fatalf("theme color was filtered: %s", html)
	}
	for _, want := range []string{
		`<h1 style="color: rgb(17,17,17)">`,
		`<main style="background-color: hsl(0, 0%, 98%); color: darkslategray;">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPortfolio_InvalidThemeColorsFallBack(t *testing.T) {
	v := sampleView()
	v.Theme = portfolio.ThemeColors{Primary: "url(http://evil.example/x.png)", Background: "red;color:blue", Text: "expression(alert(1))"}

	html := renderString(t, newTestRenderer(t, "").Portfolio(PageContext{Lang: language.English}, v))
	if !strings.Contains(html, `<h1 style="color: #3B82F6">`) {
		t.Error("invalid primary color did not fall back to the default")
	}
	if !strings.Contains(html, `<main style="background-color: #F8FAFC;">`) {
		t.Error("invalid background color did not fall back, or invalid text color was kept")
	}
}

func TestValidColor(t *testing.T) {
	valid := []string{"#fff", "#ffff", "#3B82F6", "#3B82F680", "rgb(17,17,17)", "rgba(0, 0, 0, 0.5)", "RGB(1 2 3 / 50%)", "hsl(120deg 50% 50%)", "hsla(0, 0%, 98%, 1)", "rebeccapurple", "transparent"}
	for _, c := range valid {
		if !ValidColor(c) {
			t.Errorf("ValidColor(%q) = false, want true", c)
		}
	}
	invalid := []string{"", "#12", "#ggg", "red;", "url(x)", "rgb(1,2,3);x", "rgb(1,2,3)) }", "expression(alert(1))", "var(--x)", "red blue", `"red"`}
	for _, c := range invalid {
		if ValidColor(c) {
			t.Errorf("ValidColor(%q) = true, want false", c)
		}
	}
}

func TestHome_RecentHandles(t *testing.T) {
	html := renderString(t, newTestRenderer(t, "").Home(PageContext{Lang: language.English, CurrentPath: "/"}, []string{"octocat", "torvalds"}))

	for _, want := range []string{`action="/go"`, `name="handle"`, `href="/octocat"`, `href="/torvalds"`, "Recently viewed", "portfolio.json"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestHome_NoRecentSection(t *testing.T) {
	html := renderString(t, newTestRenderer(t, "").Home(PageContext{Lang: language.English}, nil))
	if strings.Contains(html, "Recently viewed") {
		t.Error("recent section rendered without handles")
	}
}

func TestError_Messages(t *testing.T) {
	r := newTestRenderer(t, "")

	notFound := renderString(t, r.Error(PageContext{Lang: language.BrazilianPortuguese}, http.StatusNotFound, "ghost", ""))
	if !strings.Contains(notFound, "Usuário ghost não encontrado") {
		t.Errorf("not-found page missing message: %s", notFound)
	}
	if !strings.Contains(notFound, `<a href="/">Voltar ao início</a>`) {
		t.Error("not-found page missing link home")
	}

	upstream := renderString(t, r.Error(PageContext{Lang: language.English}, http.StatusBadGateway, "octocat", "github: unexpected status 403: API rate limit exceeded"))
	if !strings.Contains(upstream, "Could not load the GitHub profile") {
		t.Errorf("upstream page missing message: %s", upstream)
	}
	if !strings.Contains(upstream, `<p class="muted">github: unexpected status 403: API rate limit exceeded</p>`) {
		t.Errorf("upstream page missing error detail: %s", upstream)
	}
}

func TestError_NoDetail(t *testing.T) {
	html := renderString(t, newTestRenderer(t, "").Error(PageContext{Lang: language.English}, http.StatusNotFound, "ghost", ""))
	if strings.Contains(html, `<p class="muted">`) {
		t.Errorf("empty detail rendered: %s", html)
	}
}

func TestLanguageSwitcherKeepsQuery(t *testing.T) {
	html := renderString(t, newTestRenderer(t, "").Home(PageContext{Lang: language.English, CurrentPath: "/", CurrentQuery: "x=1"}, nil))
	if !strings.Contains(html, `href="/?lang=pt-BR&amp;x=1"`) {
		t.Errorf("language link missing: %s", html)
	}
}
