package github

import "time"

// Profile is the subset of GET /users/{login} the portfolio renders.
// Nullable string fields decode to "" when GitHub returns null.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Blog        string    `json:"blog"`
	Company     string    `json:"company"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	HTMLURL     string    `json:"html_url"`
	Email       string    `json:"email"`
}

// Repository is one entry of GET /users/{login}/repos.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Topics          []string  `json:"topics"`
}

// Contents is the envelope returned by GET /repos/{owner}/{repo}/contents/{path}
// for a single file. Content is Base64, usually wrapped at 60 columns.
type Contents struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// ListOptions controls GET /users/{login}/repos. Only the first page is ever
// requested.
type ListOptions struct {
	Sort    string // "created", "updated", "pushed", "full_name"
	PerPage int
}
