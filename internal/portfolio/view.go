package portfolio

import (
	"sort"

	"github.com/kalambet/ghfolio/internal/github"
)

const (
	DefaultPrimaryColor    = "#3B82F6"
	DefaultBackgroundColor = "#F8FAFC"

	// LinkedInBaseURL prefixes social.linkedin handles.
	LinkedInBaseURL = "https://linkedin.com/in/"

	featuredDefault = 6
	topLanguages    = 8
	topicsPerCard   = 3
)

// View is the render-ready result of Derive.
type View struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	MemberSince int    `json:"member_since,omitempty"`

	PublicRepos int `json:"public_repos"`
	Followers   int `json:"followers"`
	Following   int `json:"following"`
	TotalStars  int `json:"total_stars"`

	Theme  ThemeColors `json:"theme"`
	Social Links       `json:"social"`

	// Skills holds config-provided labels verbatim when SkillsFromConfig is
	// set, otherwise the language histogram.
	Skills           []Skill         `json:"skills"`
	SkillsFromConfig bool            `json:"skills_from_config"`
	Languages        []LanguageCount `json:"languages"`

	Featured     []RepoCard   `json:"featured"`
	RepoCount    int          `json:"repo_count"`
	HasMoreRepos bool         `json:"has_more_repos"`
	Experience   []Experience `json:"experience"`
	HasConfig    bool         `json:"has_config"`
}

// ThemeColors are the effective page colors. Text is empty unless configured.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Text       string `json:"text,omitempty"`
}

// Links are the effective social links.
type Links struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Skill is a badge. Count is zero for config-provided labels.
type Skill struct {
	Label string `json:"label"`
	Count int    `json:"count,omitempty"`
}

// LanguageCount is one bucket of the language histogram.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// RepoCard is a featured repository.
type RepoCard struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	Language    string   `json:"language,omitempty"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Topics      []string `json:"topics,omitempty"`
}

// Derive computes the page view from a Bundle. It has no side effects.
func Derive(b Bundle) View {
	theme := b.Config.theme()
	sections := b.Config.sections()
	social := b.Config.social()
	p := b.Profile

	v := View{
		Handle:      b.Handle,
		DisplayName: firstNonEmpty(p.Name, p.Login),
		AvatarURL:   p.AvatarURL,
		Bio:         firstNonEmpty(str(sections.About), p.Bio),
		Location:    p.Location,
		Company:     p.Company,
		PublicRepos: p.PublicRepos,
		Followers:   p.Followers,
		Following:   p.Following,
		TotalStars:  TotalStars(b.Repositories),
		Theme: ThemeColors{
			Primary:    firstNonEmpty(str(theme.PrimaryColor), DefaultPrimaryColor),
			Background: firstNonEmpty(str(theme.BackgroundColor), DefaultBackgroundColor),
			Text:       str(theme.TextColor),
		},
		Social: Links{
			GitHub:  p.HTMLURL,
			Website: firstNonEmpty(str(social.Website), p.Blog),
			Email:   firstNonEmpty(str(social.Email), p.Email),
		},
		Languages:    LanguageHistogram(b.Repositories, topLanguages),
		RepoCount:    len(b.Repositories),
		HasMoreRepos: len(b.Repositories) > featuredDefault,
		Experience:   []Experience{},
		HasConfig:    b.Config != nil,
	}
	if v.DisplayName == "" {
		v.DisplayName = b.Handle
	}
	if !p.CreatedAt.IsZero() {
		v.MemberSince = p.CreatedAt.Year()
	}
	if li := str(social.LinkedIn); li != "" {
		v.Social.LinkedIn = LinkedInBaseURL + li
	}

	if sections.Skills != nil {
		v.SkillsFromConfig = true
		v.Skills = make([]Skill, len(sections.Skills))
		for i, s := range sections.Skills {
			v.Skills[i] = Skill{Label: s}
		}
	} else {
		v.Skills = make([]Skill, len(v.Languages))
		for i, l := range v.Languages {
			v.Skills[i] = Skill{Label: l.Language, Count: l.Count}
		}
	}

	featured := SelectFeatured(b.Repositories, sections.Featured)
	v.Featured = make([]RepoCard, len(featured))
	for i, r := range featured {
		v.Featured[i] = card(r)
	}

	if len(sections.Experience) > 0 {
		v.Experience = make([]Experience, len(sections.Experience))
		copy(v.Experience, sections.Experience)
	}

	return v
}

// SelectFeatured returns the repositories named in names, in repos order.
// An empty names list selects the first six repositories.
func SelectFeatured(repos []github.Repository, names []string) []github.Repository {
	if len(names) == 0 {
		if len(repos) > featuredDefault {
			return repos[:featuredDefault]
		}
		return repos
	}

	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	var out []github.Repository
	for _, r := range repos {
		if _, ok := want[r.Name]; ok {
			out = append(out, r)
		}
	}
	return out
}

// LanguageHistogram counts repositories per primary language and returns
// the top n by count. Ties keep first-seen order.
func LanguageHistogram(repos []github.Repository, n int) []LanguageCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		if _, seen := counts[r.Language]; !seen {
			order = append(order, r.Language)
		}
		counts[r.Language]++
	}

	out := make([]LanguageCount, len(order))
	for i, lang := range order {
		out[i] = LanguageCount{Language: lang, Count: counts[lang]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TotalStars sums stargazers across repos.
func TotalStars(repos []github.Repository) int {
	total := 0
	for _, r := range repos {
		total += r.StargazersCount
	}
	return total
}

func card(r github.Repository) RepoCard {
	c := RepoCard{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.HTMLURL,
		Language:    r.Language,
		Stars:       r.StargazersCount,
		Forks:       r.ForksCount,
	}
	if len(r.Topics) > 0 {
		n := min(len(r.Topics), topicsPerCard)
		c.Topics = make([]string, n)
		copy(c.Topics, r.Topics[:n])
	}
	return c
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
