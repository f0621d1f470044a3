package render

import (
	"html/template"
	"regexp"

	"github.com/kalambet/ghfolio/internal/portfolio"
)

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor  = regexp.MustCompile(`^(?i:rgba?|hsla?)\([0-9a-zA-Z.,%/+\- ]*\)$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,32}$`)
)

// PageTheme is a portfolio theme whose colors are safe to place in a style
// attribute.
type PageTheme struct {
	Primary    template.CSS
	Background template.CSS
	Text       template.CSS
}

// ValidColor reports whether s is a hex, rgb(a), hsl(a) or named CSS color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s) || funcColor.MatchString(s) || namedColor.MatchString(s)
}

// pageTheme falls back to the default primary and background colors and
// drops the text color when a configured value is not a recognised color.
func pageTheme(t portfolio.ThemeColors) PageTheme {
	return PageTheme{
		Primary:    safeColor(t.Primary, portfolio.DefaultPrimaryColor),
		Background: safeColor(t.Background, portfolio.DefaultBackgroundColor),
		Text:       safeColor(t.Text, ""),
	}
}

func safeColor(c, fallback string) template.CSS {
	if ValidColor(c) {
		return template.CSS(c)
	}
	return template.CSS(fallback)
}
