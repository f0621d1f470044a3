package render

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "ghfolio_lang"
)

var (
	supported = []language.Tag{language.English, language.BrazilianPortuguese}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the list of supported language tags. The first is the default.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// MatchTag maps arbitrary tags onto a supported one, falling back to English.
func MatchTag(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

func parseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	return MatchTag(tag), true
}

// ResolveTag determines the best language tag for the request: ?lang= first,
// then the preference cookie, then Accept-Language.
// The bool reports whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return supported[0], false
	}

	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, ok := parseTag(v); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := parseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTag(tags...), false
		}
	}

	return supported[0], false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Localizer formats catalog messages and numbers for one language.
type Localizer struct {
	Tag language.Tag
	p   *message.Printer
}

func NewLocalizer(tag language.Tag) Localizer {
	return Localizer{Tag: tag, p: message.NewPrinter(tag)}
}

// T looks up key in the catalog and formats it with args.
func (l Localizer) T(key string, args ...any) string {
	return l.p.Sprintf(key, args...)
}

// N formats an integer with the locale's digit grouping.
func (l Localizer) N(n int) string {
	return l.p.Sprintf("%d", n)
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

func languageOptions(loc Localizer, path, rawQuery string) []LanguageOption {
	opts := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		opts = append(opts, LanguageOption{
			Tag:    tag.String(),
			Label:  loc.T(languageKey(tag)),
			URL:    languageURL(path, rawQuery, tag.String()),
			Active: tag == loc.Tag,
		})
	}
	return opts
}

func languageKey(tag language.Tag) string {
	if tag == language.BrazilianPortuguese {
		return "lang.pt_br"
	}
	return "lang.en"
}

// languageURL returns path with the lang param set to tag.
func languageURL(path, rawQuery, tag string) string {
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
