package suggestions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// Remove markdown code block markers
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}

	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}

	response = strings.TrimSpace(response)

	// Extract JSON from response that might contain explanatory text
	// Look for the first { and last } to extract the JSON object
	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response // No JSON found, return as is
	}

	lastBrace := strings.LastIndex(response, "}")
	if lastBrace == -1 || lastBrace <= firstBrace {
		return response // No valid JSON structure found
	}

	jsonPortion := response[firstBrace : lastBrace+1]
	return strings.TrimSpace(jsonPortion)
}

type rawSuggestion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Importance            string   `json:"importance"`
	Rationale             string   `json:"rationale"`
	Tags                  []string `json:"tags"`
	EstimatedVisitMinutes int      `json:"estimated_visit_minutes"`
	CostLevel             string   `json:"cost_level"`
	BestTimeToVisit       string   `json:"best_time_to_visit"`
}

// parseSuggestionResult decodes the model's JSON and normalizes it into
// domain types. Entries the aggregator cannot place, those without a name or
// coordinates, are dropped rather than failing the whole response.
func parseSuggestionResult(raw string) (*types.SuggestionResult, error) {
	var payload struct {
		Suggestions []rawSuggestion `json:"suggestions"`
		Narrative   string          `json:"narrative"`
		Tips        []string        `json:"tips"`
	}
	cleaned := cleanJSONResponse(raw)
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion JSON: %w", err)
	}

	result := &types.SuggestionResult{
		Narrative: payload.Narrative,
		Tips:      payload.Tips,
	}
	for _, s := range payload.Suggestions {
		if s.Name == "" || (s.Location.Latitude == 0 && s.Location.Longitude == 0) {
			continue
		}
		result.Suggestions = append(result.Suggestions, types.ModelSuggestion{
			Name:     s.Name,
			Category: s.Category,
			Location: types.Location{
				Latitude:  s.Location.Latitude,
				Longitude: s.Location.Longitude,
			},
			Importance:            parseImportance(s.Importance),
			Rationale:             s.Rationale,
			Tags:                  s.Tags,
			EstimatedVisitMinutes: s.EstimatedVisitMinutes,
			CostLevel:             s.CostLevel,
			BestTimeToVisit:       s.BestTimeToVisit,
		})
	}
	return result, nil
}

// parseImportance accepts the canonical tier names plus the prose variants
// models tend to produce ("Must-visit", "HIGHLY RECOMMENDED").
func parseImportance(s string) types.ImportanceTier {
	compact := strings.ToLower(strings.TrimSpace(s))
	compact = strings.NewReplacer("-", "", "_", "", " ", "").Replace(compact)
	switch compact {
	case "mustvisit", "mustsee":
		return types.TierMustVisit
	case "highlyrecommended", "recommended":
		return types.TierHighlyRecommended
	default:
		return types.TierWorthCheckingOut
	}
}
