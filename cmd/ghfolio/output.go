package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kalambet/ghfolio/internal/portfolio"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+msg))
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := colorize(colorBold, label+":")
	fmt.Fprintf(os.Stderr, "  %s %s\n", l, val)
}

func printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorCyan, "→ "+msg))
}

// writeView prints a plain-text summary of a portfolio.
func writeView(w io.Writer, v portfolio.View) {
	fmt.Fprintln(w, colorize(colorBold, v.DisplayName)+" (@"+v.Handle+")")
	if v.Bio != "" {
		fmt.Fprintln(w, v.Bio)
	}
	fmt.Fprintf(w, "%d repositories · %d followers · %d stars\n", v.PublicRepos, v.Followers, v.TotalStars)
	if v.MemberSince > 0 {
		fmt.Fprintf(w, "member since %d\n", v.MemberSince)
	}

	if len(v.Skills) > 0 {
		labels := make([]string, len(v.Skills))
		for i, s := range v.Skills {
			labels[i] = s.Label
			if s.Count > 0 {
				labels[i] += " (" + strconv.Itoa(s.Count) + ")"
			}
		}
		fmt.Fprintf(w, "\n%s %s\n", colorize(colorCyan, "skills:"), strings.Join(labels, ", "))
	}

	if len(v.Experience) > 0 {
		fmt.Fprintln(w, "\n"+colorize(colorCyan, "experience:"))
		for _, e := range v.Experience {
			fmt.Fprintf(w, "  %s, %s (%s)\n", e.Title, e.Company, e.Period)
			for _, h := range e.Highlights {
				fmt.Fprintf(w, "    - %s\n", h)
			}
		}
	}

	if len(v.Featured) > 0 {
		fmt.Fprintln(w, "\n"+colorize(colorCyan, "featured:"))
		for _, r := range v.Featured {
			line := "  " + r.Name
			if r.Language != "" {
				line += " [" + r.Language + "]"
			}
			line += fmt.Sprintf(" ★%d", r.Stars)
			fmt.Fprintln(w, line)
			if r.Description != "" {
				fmt.Fprintf(w, "    %s\n", r.Description)
			}
		}
		if v.HasMoreRepos {
			fmt.Fprintf(w, "  all %d repositories: %s?tab=repositories\n", v.PublicRepos, v.Social.GitHub)
		}
	}

	for _, l := range []struct{ label, val string }{
		{"github", v.Social.GitHub},
		{"linkedin", v.Social.LinkedIn},
		{"website", v.Social.Website},
		{"email", v.Social.Email},
	} {
		if l.val != "" {
			fmt.Fprintf(w, "%s %s\n", colorize(colorBold, l.label+":"), l.val)
		}
	}
}
