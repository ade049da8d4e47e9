package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `{"suggestions": []}`,
			expected: `{"suggestions": []}`,
		},
		{
			name:     "markdown fenced",
			input:    "```json\n{\"suggestions\": []}\n```",
			expected: `{"suggestions": []}`,
		},
		{
			name:     "surrounding prose",
			input:    "Here is your plan:\n{\"suggestions\": []}\nEnjoy the trip!",
			expected: `{"suggestions": []}`,
		},
		{
			name:     "no JSON at all",
			input:    "sorry, I cannot help",
			expected: "sorry, I cannot help",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cleanJSONResponse(tc.input))
		})
	}
}

func TestParseSuggestionResult(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		raw := "```json\n" + `{
			"suggestions": [{
				"name": "Mosteiro da Batalha",
				"category": "museum",
				"location": {"latitude": 39.6586, "longitude": -8.8258},
				"importance": "must_visit",
				"rationale": "Gothic masterpiece right off the highway",
				"tags": ["unesco", "architecture"],
				"estimated_visit_minutes": 90,
				"cost_level": "budget",
				"best_time_to_visit": "morning"
			}],
			"narrative": "A drive through central Portugal.",
			"tips": ["Fill up before the toll road"]
		}` + "\n```"

		result, err := parseSuggestionResult(raw)
		require.NoError(t, err)
		require.Len(t, result.Suggestions, 1)

		s := result.Suggestions[0]
		assert.Equal(t, "Mosteiro da Batalha", s.Name)
		assert.Equal(t, types.TierMustVisit, s.Importance)
		assert.Equal(t, 90, s.EstimatedVisitMinutes)
		assert.Equal(t, "A drive through central Portugal.", result.Narrative)
		assert.Len(t, result.Tips, 1)
	})

	t.Run("drops entries without name or coordinates", func(t *testing.T) {
		raw := `{
			"suggestions": [
				{"name": "", "location": {"latitude": 39.0, "longitude": -8.0}},
				{"name": "Nowhere", "location": {"latitude": 0, "longitude": 0}},
				{"name": "Kept", "location": {"latitude": 39.1, "longitude": -8.1}}
			]
		}`

		result, err := parseSuggestionResult(raw)
		require.NoError(t, err)
		require.Len(t, result.Suggestions, 1)
		assert.Equal(t, "Kept", result.Suggestions[0].Name)
	})

	t.Run("malformed JSON fails", func(t *testing.T) {
		_, err := parseSuggestionResult(`{"suggestions": [`)
		assert.Error(t, err)
	})
}

func TestParseImportance(t *testing.T) {
	tests := []struct {
		input    string
		expected types.ImportanceTier
	}{
		{"must_visit", types.TierMustVisit},
		{"Must-Visit", types.TierMustVisit},
		{"MUST VISIT", types.TierMustVisit},
		{"highly_recommended", types.TierHighlyRecommended},
		{"Highly Recommended", types.TierHighlyRecommended},
		{"worth_checking_out", types.TierWorthCheckingOut},
		{"", types.TierWorthCheckingOut},
		{"something else", types.TierWorthCheckingOut},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, parseImportance(tc.input), "input %q", tc.input)
	}
}
