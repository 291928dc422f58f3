// File: internal/preference/aggregate.go

// Package preference computes derived group-level dining preferences from
// member profiles. Nothing here is persisted; snapshots are recomputed on
// every request, which is fine at single-digit group sizes.
package preference

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const recommendedCuisineLimit = 3

// MemberProfile is the slice of a user profile the aggregator reads.
type MemberProfile struct {
	FavoriteCuisines    []string
	DietaryRestrictions []string
	Allergies           []string
}

// Snapshot is the aggregated view over a group's member profiles.
type Snapshot struct {
	RecommendedCuisines []string       `json:"recommended_cuisines"`
	DietaryRestrictions []string       `json:"dietary_restrictions"`
	Allergies           []string       `json:"allergies"`
	CuisineCounts       map[string]int `json:"cuisine_counts"`
}

var titleCaser = cases.Title(language.English)

// normalize trims and title-cases a raw preference value. Empty results are
// discarded by the callers.
func normalize(value string) string {
	return titleCaser.String(strings.TrimSpace(value))
}

// Aggregate computes the group snapshot for a set of member profiles.
// An empty member list yields empty collections, never an error.
func Aggregate(members []MemberProfile) Snapshot {
	cuisineCounts := make(map[string]int)
	dietSet := make(map[string]struct{})
	allergySet := make(map[string]struct{})

	for _, member := range members {
		for _, cuisine := range member.FavoriteCuisines {
			if normalized := normalize(cuisine); normalized != "" {
				cuisineCounts[normalized]++
			}
		}
		for _, diet := range member.DietaryRestrictions {
			if normalized := normalize(diet); normalized != "" {
				dietSet[normalized] = struct{}{}
			}
		}
		for _, allergy := range member.Allergies {
			if normalized := normalize(allergy); normalized != "" {
				allergySet[normalized] = struct{}{}
			}
		}
	}

	return Snapshot{
		RecommendedCuisines: topCuisines(cuisineCounts, recommendedCuisineLimit),
		DietaryRestrictions: sortedKeys(dietSet),
		Allergies:           sortedKeys(allergySet),
		CuisineCounts:       cuisineCounts,
	}
}

// topCuisines ranks cuisines by descending count, breaking ties
// alphabetically, and keeps the first limit entries.
func topCuisines(counts map[string]int, limit int) []string {
	ranked := make([]string, 0, len(counts))
	for cuisine := range counts {
		ranked = append(ranked, cuisine)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
