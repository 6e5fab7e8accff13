package pipeline

import (
	"strings"

	"github.com/emprendo/copiloto/internal/model"
)

// ClientFilter reduces the client set. All set predicates are
// AND-combined; zero values impose no constraint.
type ClientFilter struct {
	Text      string
	Stage     model.Stage
	Potential model.Potential
}

// FilterClients returns the clients matching the filter, preserving
// the relative order of the input. Pure: it never mutates its input
// and is idempotent.
//
// Text matches case-insensitively as a substring against name, company
// and email.
func FilterClients(clients []model.Client, f ClientFilter) []model.Client {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if text != "" && !matchesText(c, text) {
			continue
		}
		if f.Stage != "" && c.Status != f.Stage {
			continue
		}
		if f.Potential != "" && c.Potential != f.Potential {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesText(c model.Client, text string) bool {
	return strings.Contains(strings.ToLower(c.Name), text) ||
		strings.Contains(strings.ToLower(c.Company), text) ||
		strings.Contains(strings.ToLower(c.Email), text)
}
