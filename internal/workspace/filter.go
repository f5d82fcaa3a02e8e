package workspace

import (
	"strings"

	"tenderdesk/internal/models"
)

// Match reports whether a tender satisfies the workspace search text.
// A tender matches when its title contains the text case-insensitively, or
// when the decimal rendering of its budget contains it verbatim. An empty
// search matches everything.
func Match(t models.Tender, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), strings.ToLower(search)) {
		return true
	}
	return strings.Contains(t.BudgetString(), search)
}

// Filter returns the tenders matching the search text, preserving order.
func Filter(tenders []models.Tender, search string) []models.Tender {
	out := make([]models.Tender, 0, len(tenders))
	for _, t := range tenders {
		if Match(t, search) {
			out = append(out, t)
		}
	}
	return out
}
