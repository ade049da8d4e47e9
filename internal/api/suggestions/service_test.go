package suggestions

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// MockAIClient is a mock implementation of AIClient
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func testRoute() types.RouteSummary {
	return types.RouteSummary{
		StartAddress:    "Lisbon, Portugal",
		EndAddress:      "Porto, Portugal",
		DistanceKm:      313,
		DurationMinutes: 180,
		Mode:            types.ModeDriving,
	}
}

func TestSuggestAlongRoute(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("parses model output into suggestions", func(t *testing.T) {
		mockAI := new(MockAIClient)
		service := NewServiceImpl(mockAI, 0.5, logger, nil)

		mockAI.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(`{
			"suggestions": [{
				"name": "Aveiro Canals",
				"category": "tourist_attraction",
				"location": {"latitude": 40.6405, "longitude": -8.6538},
				"importance": "highly_recommended",
				"rationale": "short detour to the Venice of Portugal"
			}],
			"narrative": "Coastal stops on the way north."
		}`, nil)

		result, err := service.SuggestAlongRoute(ctx, testRoute(), nil, nil)
		require.NoError(t, err)
		require.Len(t, result.Suggestions, 1)
		assert.Equal(t, types.TierHighlyRecommended, result.Suggestions[0].Importance)
		mockAI.AssertExpectations(t)
	})

	t.Run("prompt carries route, preferences and candidates", func(t *testing.T) {
		mockAI := new(MockAIClient)
		service := NewServiceImpl(mockAI, 0.5, logger, nil)

		var captured string
		mockAI.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
			Run(func(args mock.Arguments) { captured = args.String(1) }).
			Return(`{"suggestions": []}`, nil)

		prefs := []types.UserPreference{{Category: "museum", InterestLevel: 5}}
		candidates := []types.CandidatePlace{{
			Name:     "Cervejaria Ramiro",
			Category: "restaurant",
			Location: types.Location{Latitude: 38.7205, Longitude: -9.1355},
		}}

		_, err := service.SuggestAlongRoute(ctx, testRoute(), prefs, candidates)
		require.NoError(t, err)
		assert.Contains(t, captured, "Lisbon, Portugal")
		assert.Contains(t, captured, "museum: 5")
		assert.Contains(t, captured, "Cervejaria Ramiro")
	})

	t.Run("model failure surfaces", func(t *testing.T) {
		mockAI := new(MockAIClient)
		service := NewServiceImpl(mockAI, 0.5, logger, nil)

		mockAI.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
			Return("", errors.New("model unavailable"))

		_, err := service.SuggestAlongRoute(ctx, testRoute(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("unparseable response is an error", func(t *testing.T) {
		mockAI := new(MockAIClient)
		service := NewServiceImpl(mockAI, 0.5, logger, nil)

		mockAI.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
			Return("I'd love to help but cannot produce JSON today", nil)

		_, err := service.SuggestAlongRoute(ctx, testRoute(), nil, nil)
		assert.Error(t, err)
	})
}
