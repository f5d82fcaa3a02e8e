package workspace

import (
	"testing"

	"tenderdesk/internal/models"
)

func TestMatch(t *testing.T) {
	tender := models.Tender{Title: "Road Construction", Budget: 125000.5}

	tests := []struct {
		name   string
		search string
		want   bool
	}{
		{"empty search matches", "", true},
		{"title substring", "construc", true},
		{"title case-insensitive", "ROAD", true},
		{"budget substring", "25000", true},
		{"budget with decimals", "125000.5", true},
		{"no match", "bridge", false},
		{"budget format mismatch", "125,000", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tender, tt.search); got != tt.want {
				t.Errorf("Match(%q) = %v; want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestFilter_ExactSubset(t *testing.T) {
	tenders := []models.Tender{
		{ID: 1, Title: "Office cleaning", Budget: 900},
		{ID: 2, Title: "Road repair", Budget: 120000},
		{ID: 3, Title: "CLEANING supplies", Budget: 120},
	}

	got := Filter(tenders, "cleaning")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("Filter by title = %+v; want tenders 1 and 3 in order", got)
	}

	// Every returned tender must itself match, and every omitted one must not.
	search := "120"
	got = Filter(tenders, search)
	seen := make(map[int64]bool)
	for _, tr := range got {
		if !Match(tr, search) {
			t.Errorf("filtered tender %d does not match %q", tr.ID, search)
		}
		seen[tr.ID] = true
	}
	for _, tr := range tenders {
		if Match(tr, search) && !seen[tr.ID] {
			t.Errorf("matching tender %d missing from filter output", tr.ID)
		}
	}
}
