package portfolio

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config is the optional, user-authored portfolio.json document. Every level
// is optional: nil pointers and nil slices mean "not set".
type Config struct {
	Theme    *Theme    `json:"theme,omitempty"`
	Sections *Sections `json:"sections,omitempty"`
	Social   *Social   `json:"social,omitempty"`
}

// Theme overrides the page colors.
type Theme struct {
	PrimaryColor    *string `json:"primaryColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	TextColor       *string `json:"textColor,omitempty"`
}

// Sections overrides page content. Skills distinguishes nil (derive from
// languages) from an explicit empty list (render no skills).
type Sections struct {
	About      *string      `json:"about,omitempty"`
	Skills     []string     `json:"skills"`
	Featured   []string     `json:"featured,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
}

// Experience is one entry of the experience timeline.
type Experience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Period     string   `json:"period"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// Social overrides the contact links.
type Social struct {
	LinkedIn *string `json:"linkedin,omitempty"`
	Website  *string `json:"website,omitempty"`
	Email    *string `json:"email,omitempty"`
}

var (
	ErrConfigEncoding = errors.New("config content is not valid base64")
	ErrConfigText     = errors.New("config content is not valid UTF-8")
	ErrConfigJSON     = errors.New("config content is not valid JSON")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeConfig turns the Base64 "content" field of a contents-API envelope
// into a Config. Line breaks inserted by the API are ignored. A document that
// is the JSON literal null decodes to (nil, nil).
func DecodeConfig(content string) (*Config, error) {
	clean := strings.NewReplacer("\n", "", "\r", "").Replace(content)

	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigEncoding, err)
	}
	if !utf8.Valid(raw) {
		return nil, ErrConfigText
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigJSON, err)
	}
	return &cfg, nil
}

// str dereferences an optional string, treating nil as "".
func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (c *Config) theme() Theme {
	if c == nil || c.Theme == nil {
		return Theme{}
	}
	return *c.Theme
}

func (c *Config) sections() Sections {
	if c == nil || c.Sections == nil {
		return Sections{}
	}
	return *c.Sections
}

func (c *Config) social() Social {
	if c == nil || c.Social == nil {
		return Social{}
	}
	return *c.Social
}
