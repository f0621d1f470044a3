package portfolio

import (
	"strings"

	"github.com/kalambet/ghfolio/internal/github"
)

// FilterRepositories drops repositories that should never appear on a
// portfolio: anything with "fork" in its name, and the conventional
// "config", "readme" and profile-README (same name as the handle)
// repositories. Comparisons are case-insensitive; order is preserved.
func FilterRepositories(handle string, repos []github.Repository) []github.Repository {
	self := strings.ToLower(handle)
	out := make([]github.Repository, 0, len(repos))
	for _, r := range repos {
		name := strings.ToLower(r.Name)
		if strings.Contains(name, "fork") {
			continue
		}
		if name == "config" || name == "readme" || name == self {
			continue
		}
		out = append(out, r)
	}
	return out
}
