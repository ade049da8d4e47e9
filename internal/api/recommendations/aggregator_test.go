package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

func rating(v float64) *float64 { return &v }

func candidate(id, name string, lat, lng float64, r *float64, distKm float64) types.CandidatePlace {
	return types.CandidatePlace{
		ProviderID: id,
		Name:       name,
		Category:   "restaurant",
		Location:   types.Location{Latitude: lat, Longitude: lng},
		Rating:     r,
		DistanceKm: distKm,
	}
}

func TestAggregateDeduplication(t *testing.T) {
	t.Run("model suggestion with rationale replaces its provider duplicate", func(t *testing.T) {
		candidates := []types.CandidatePlace{
			candidate("place-1", "Cafe Central", 38.710, -9.140, rating(4.2), 1.0),
		}
		model := &types.SuggestionResult{Suggestions: []types.ModelSuggestion{{
			Name:       "Cafe Central",
			Category:   "cafe",
			Location:   types.Location{Latitude: 38.7101, Longitude: -9.1399},
			DistanceKm: 1.0,
			Importance: types.TierMustVisit,
			Rationale:  "historic literary cafe right on the route",
		}}}

		recs := Aggregate(candidates, model, nil, 0)
		require.Len(t, recs, 1)
		assert.Equal(t, types.SourceModel, recs[0].Source)
		assert.Equal(t, "historic literary cafe right on the route", recs[0].Rationale)
		assert.Equal(t, types.TierMustVisit, recs[0].Importance)
	})

	t.Run("model suggestion without rationale loses to a rated provider record", func(t *testing.T) {
		candidates := []types.CandidatePlace{
			candidate("place-1", "Cafe Central", 38.710, -9.140, rating(4.2), 1.0),
		}
		model := &types.SuggestionResult{Suggestions: []types.ModelSuggestion{{
			Name:     "Cafe Central",
			Location: types.Location{Latitude: 38.7102, Longitude: -9.1401},
		}}}

		recs := Aggregate(candidates, model, nil, 0)
		require.Len(t, recs, 1)
		assert.Equal(t, types.SourceProvider, recs[0].Source)
		assert.Equal(t, "place-1", recs[0].ID)
	})

	t.Run("duplicate provider entries keep the higher rating", func(t *testing.T) {
		candidates := []types.CandidatePlace{
			candidate("place-1", "Cafe Central", 38.710, -9.140, rating(4.0), 1.0),
			candidate("place-1", "Cafe Central", 38.710, -9.140, rating(4.6), 1.0),
		}
		recs := Aggregate(candidates, nil, nil, 0)
		require.Len(t, recs, 1)
		assert.Equal(t, 4.6, *recs[0].Rating)
	})

	t.Run("nearby places a block apart stay distinct", func(t *testing.T) {
		candidates := []types.CandidatePlace{
			candidate("", "Cafe Central", 38.710, -9.140, rating(4.0), 1.0),
			candidate("", "Cafe Central", 38.720, -9.140, rating(4.0), 1.0),
		}
		recs := Aggregate(candidates, nil, nil, 0)
		assert.Len(t, recs, 2)
	})
}

func TestAggregateTiers(t *testing.T) {
	tests := []struct {
		name     string
		rating   float64
		distKm   float64
		expected types.ImportanceTier
	}{
		{"top rated on the route", 4.5, 2.0, types.TierMustVisit},
		{"rating just below the cut", 4.49, 2.0, types.TierHighlyRecommended},
		{"too far for the top tier", 4.8, 2.01, types.TierHighlyRecommended},
		{"solid rating within reach", 4.0, 5.0, types.TierHighlyRecommended},
		{"mediocre rating", 3.9, 0.5, types.TierWorthCheckingOut},
		{"good but remote", 4.9, 5.1, types.TierWorthCheckingOut},
		{"unrated", 0, 0.1, types.TierWorthCheckingOut},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r *float64
			if tc.rating > 0 {
				r = rating(tc.rating)
			}
			recs := Aggregate([]types.CandidatePlace{
				candidate("p", "Place", 38.7, -9.1, r, tc.distKm),
			}, nil, nil, 0)
			require.Len(t, recs, 1)
			assert.Equal(t, tc.expected, recs[0].Importance)
		})
	}
}

func TestAggregateScoring(t *testing.T) {
	t.Run("higher rating scores higher, all else equal", func(t *testing.T) {
		recs := Aggregate([]types.CandidatePlace{
			candidate("a", "A", 38.70, -9.10, rating(4.0), 4.0),
			candidate("b", "B", 38.71, -9.11, rating(4.4), 4.0),
		}, nil, nil, 0)
		require.Len(t, recs, 2)
		assert.Equal(t, "B", recs[0].Name)
		assert.Greater(t, recs[0].Score, recs[1].Score)
	})

	t.Run("proximity bonus stops at three kilometres", func(t *testing.T) {
		near := Aggregate([]types.CandidatePlace{candidate("a", "A", 38.7, -9.1, rating(3.0), 0.0)}, nil, nil, 0)
		far := Aggregate([]types.CandidatePlace{candidate("a", "A", 38.7, -9.1, rating(3.0), 7.0)}, nil, nil, 0)
		assert.InDelta(t, 3.0, near[0].Score-far[0].Score, 1e-9)
	})

	t.Run("user interest lifts matching categories", func(t *testing.T) {
		prefs := []types.UserPreference{{Category: "restaurant", InterestLevel: 5}}
		with := Aggregate([]types.CandidatePlace{candidate("a", "A", 38.7, -9.1, rating(4.0), 4.0)}, nil, prefs, 0)
		without := Aggregate([]types.CandidatePlace{candidate("a", "A", 38.7, -9.1, rating(4.0), 4.0)}, nil, nil, 0)
		assert.InDelta(t, 5.0, with[0].Score-without[0].Score, 1e-9)
	})

	t.Run("tag bonus is capped", func(t *testing.T) {
		many := candidate("a", "A", 38.7, -9.1, rating(4.0), 4.0)
		many.Tags = make([]string, 30)
		some := candidate("b", "B", 38.7, -9.2, rating(4.0), 4.0)
		some.Tags = make([]string, 10)
		recs := Aggregate([]types.CandidatePlace{many, some}, nil, nil, 0)
		require.Len(t, recs, 2)
		assert.InDelta(t, recs[0].Score, recs[1].Score, 1e-9)
	})
}

func TestAggregateOrdering(t *testing.T) {
	t.Run("tier dominates score", func(t *testing.T) {
		recs := Aggregate([]types.CandidatePlace{
			// High score but middle tier.
			candidate("a", "A", 38.70, -9.10, rating(4.4), 0.0),
			// Lower score but top tier.
			candidate("b", "B", 38.71, -9.11, rating(4.5), 2.0),
		}, nil, nil, 0)
		require.Len(t, recs, 2)
		assert.Equal(t, "B", recs[0].Name)
	})

	t.Run("distance breaks score ties", func(t *testing.T) {
		// Same tier, same score, only the route distance differs.
		recs := Aggregate([]types.CandidatePlace{
			candidate("far", "Far", 38.70, -9.10, rating(4.0), 5.0),
			candidate("near", "Near", 38.71, -9.11, rating(4.0), 4.0),
		}, nil, nil, 0)
		require.Len(t, recs, 2)
		require.InDelta(t, recs[0].Score, recs[1].Score, 1e-9)
		assert.Equal(t, "Near", recs[0].Name)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		candidates := []types.CandidatePlace{
			candidate("a", "A", 38.70, -9.10, rating(4.2), 1.5),
			candidate("b", "B", 38.71, -9.11, rating(4.2), 1.5),
			candidate("c", "C", 38.72, -9.12, rating(4.7), 0.5),
		}
		model := &types.SuggestionResult{Suggestions: []types.ModelSuggestion{
			{Name: "D", Location: types.Location{Latitude: 38.73, Longitude: -9.13}, Importance: types.TierMustVisit, Rationale: "worth the detour"},
		}}
		first := Aggregate(candidates, model, nil, 0)
		second := Aggregate(candidates, model, nil, 0)
		assert.Equal(t, first, second)
	})

	t.Run("equal records preserve input order", func(t *testing.T) {
		recs := Aggregate([]types.CandidatePlace{
			candidate("first", "First", 38.70, -9.10, rating(4.0), 4.0),
			candidate("second", "Second", 38.71, -9.11, rating(4.0), 4.0),
		}, nil, nil, 0)
		require.Len(t, recs, 2)
		assert.Equal(t, "First", recs[0].Name)
	})
}

func TestAggregateTruncation(t *testing.T) {
	t.Run("truncates only after sorting", func(t *testing.T) {
		// The strongest entry arrives last; a pre-sort cut would drop it.
		candidates := []types.CandidatePlace{
			candidate("a", "A", 38.70, -9.10, rating(3.0), 6.0),
			candidate("b", "B", 38.71, -9.11, rating(3.1), 6.0),
			candidate("c", "C", 38.72, -9.12, rating(4.9), 1.0),
		}
		recs := Aggregate(candidates, nil, nil, 2)
		require.Len(t, recs, 2)
		assert.Equal(t, "C", recs[0].Name)
	})

	t.Run("default limit applies when unset", func(t *testing.T) {
		candidates := make([]types.CandidatePlace, 0, 30)
		for i := 0; i < 30; i++ {
			candidates = append(candidates, candidate(
				string(rune('a'+i)), string(rune('A'+i)),
				38.0+float64(i)*0.1, -9.0, rating(4.0), 3.0,
			))
		}
		recs := Aggregate(candidates, nil, nil, 0)
		assert.Len(t, recs, DefaultLimit)
	})
}

func TestAggregateEmptyInputs(t *testing.T) {
	t.Run("nothing in, nothing out", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil, nil, nil, 0))
		assert.Empty(t, Aggregate(nil, &types.SuggestionResult{}, nil, 0))
	})

	t.Run("provider-only input still ranks", func(t *testing.T) {
		recs := Aggregate([]types.CandidatePlace{
			candidate("a", "A", 38.7, -9.1, rating(4.6), 1.0),
		}, nil, nil, 0)
		require.Len(t, recs, 1)
		assert.Equal(t, types.TierMustVisit, recs[0].Importance)
	})

	t.Run("model-only input still ranks", func(t *testing.T) {
		model := &types.SuggestionResult{Suggestions: []types.ModelSuggestion{
			{Name: "Hidden Garden", Location: types.Location{Latitude: 38.7, Longitude: -9.1}, Importance: types.TierHighlyRecommended, Rationale: "quiet detour"},
		}}
		recs := Aggregate(nil, model, nil, 0)
		require.Len(t, recs, 1)
		assert.Equal(t, types.SourceModel, recs[0].Source)
	})
}
