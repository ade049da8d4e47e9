package suggestions

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// maxCandidateContext caps how many provider candidates are echoed into the
// prompt to keep token usage bounded.
const maxCandidateContext = 15

func buildRoutePrompt(route types.RouteSummary, prefs []types.UserPreference, candidates []types.CandidatePlace) string {
	prompt := fmt.Sprintf(`
        You are a travel AI assistant suggesting stops for a trip from %s to %s
        (%.1f km, about %.0f minutes by %s).

        User interest levels (1 lowest to 5 highest):
        `, route.StartAddress, route.EndAddress, route.DistanceKm, route.DurationMinutes, route.Mode)

	for _, pref := range prefs {
		prompt += fmt.Sprintf("- %s: %d\n", pref.Category, pref.InterestLevel)
	}

	if len(candidates) > 0 {
		prompt += "\n**Places already found near the route:**\n"
		for i, c := range candidates {
			if i >= maxCandidateContext {
				break
			}
			prompt += fmt.Sprintf("- %s (%s) [Lat: %.6f, Lon: %.6f]\n",
				c.Name, c.Category, c.Location.Latitude, c.Location.Longitude)
		}
		prompt += "\n**Instructions:** Suggest places these miss, especially hidden gems a search index would not rank highly. Avoid exact duplicates unless you have a strong reason a listed place is unmissable.\n"
	}

	prompt += `
        Format the response in JSON with the following structure:
        {
            "suggestions": [
                {
                    "name": "Place name",
                    "category": "Category",
                    "location": {
                        "latitude": float64,
                        "longitude": float64
                    },
                    "importance": "must_visit | highly_recommended | worth_checking_out",
                    "rationale": "Why this place is worth the stop for this traveller",
                    "tags": ["tag1", "tag2"],
                    "estimated_visit_minutes": 60,
                    "cost_level": "free | budget | moderate | expensive",
                    "best_time_to_visit": "morning | afternoon | evening | any"
                }
            ],
            "narrative": "A short paragraph describing the trip and its highlights",
            "tips": ["practical travel tip"]
        }
        Only include places genuinely close to the route. Respond with JSON only.
    `

	return strings.TrimSpace(prompt)
}
