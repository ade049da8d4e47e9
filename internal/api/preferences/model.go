package preferences

import (
	"sort"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// minSearchLevel is the interest level at which a category starts
// contributing provider search categories.
const minSearchLevel = 3

// KnownCategories is the closed set of interest categories a user can weight.
var KnownCategories = []string{
	"restaurant",
	"museum",
	"park",
	"shopping",
	"activity",
	"lodging",
	"photography",
}

// knownCategory reports whether the category belongs to the closed set
// users may weight.
func knownCategory(category string) bool {
	for _, c := range KnownCategories {
		if c == category {
			return true
		}
	}
	return false
}

// searchCategoryTable maps each user category to the provider search
// categories it expands into.
var searchCategoryTable = map[string][]string{
	"restaurant":  {"restaurant", "food", "cafe", "bakery"},
	"museum":      {"museum", "art_gallery", "library"},
	"park":        {"park", "natural_feature", "campground"},
	"shopping":    {"shopping_mall", "store", "department_store"},
	"activity":    {"amusement_park", "aquarium", "bowling_alley", "movie_theater"},
	"lodging":     {"lodging", "hotel"},
	"photography": {"tourist_attraction", "point_of_interest", "establishment"},
}

// defaultSearchCategories is used when no preference reaches minSearchLevel.
// The system must never issue zero search categories.
var defaultSearchCategories = []string{"restaurant", "tourist_attraction"}

// SearchCategories expands the user's weighted interests into the set of
// provider search categories, sorted for deterministic fan-out order.
func SearchCategories(prefs []types.UserPreference) []string {
	seen := make(map[string]struct{})
	for _, pref := range prefs {
		if pref.InterestLevel < minSearchLevel {
			continue
		}
		mapped, ok := searchCategoryTable[pref.Category]
		if !ok {
			// Unknown categories pass through as-is, matching the
			// provider's open category vocabulary.
			mapped = []string{pref.Category}
		}
		for _, c := range mapped {
			seen[c] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return append([]string(nil), defaultSearchCategories...)
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// InterestScore returns the interest level of whichever preference maps to
// the candidate's category, or 0 when none does. Contributes directly to
// ranking.
func InterestScore(candidateCategory string, prefs []types.UserPreference) float64 {
	for _, pref := range prefs {
		if pref.Category == candidateCategory {
			return float64(pref.InterestLevel)
		}
		for _, mapped := range searchCategoryTable[pref.Category] {
			if mapped == candidateCategory {
				return float64(pref.InterestLevel)
			}
		}
	}
	return 0
}
