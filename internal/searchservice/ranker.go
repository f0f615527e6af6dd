package searchservice

import (
	"slices"
	"strings"

	"easyexplore/internal/models"
)

// Rank flags places whose name or description contains query
// (case-insensitive) and moves them ahead of the rest. Relative order within
// each group is preserved. The input slice is not modified.
func Rank(places []models.EnrichedPlace, query string) []models.EnrichedPlace {
	ranked := make([]models.EnrichedPlace, len(places))
	copy(ranked, places)

	keyword := strings.ToLower(strings.TrimSpace(query))
	for i := range ranked {
		ranked[i].PriorityMatch = 0
		if keyword != "" && matches(ranked[i], keyword) {
			ranked[i].PriorityMatch = 1
		}
	}

	slices.SortStableFunc(ranked, func(a, b models.EnrichedPlace) int {
		return b.PriorityMatch - a.PriorityMatch
	})
	return ranked
}

func matches(p models.EnrichedPlace, keyword string) bool {
	if p.Name != nil && strings.Contains(strings.ToLower(*p.Name), keyword) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), keyword)
}
