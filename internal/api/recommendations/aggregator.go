package recommendations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-route-recommendations/internal/api/preferences"
	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// DefaultLimit caps the result set when the caller does not ask for a
// specific size.
const DefaultLimit = 20

// Tier thresholds. Boundaries are inclusive.
const (
	mustVisitMinRating   = 4.5
	mustVisitMaxKm       = 2.0
	recommendedMinRating = 4.0
	recommendedMaxKm     = 5.0
)

// Aggregate merges provider candidates and model suggestions into one ranked
// recommendation list. The merge is pure: no I/O, deterministic output for
// identical input.
//
// Duplicates across sources collapse onto the same identity key. A model
// suggestion that carries a rationale beats the provider record it duplicates;
// otherwise the higher rated record survives. Results are sorted by tier,
// then score, then distance, and only truncated after sorting so a capped
// list still holds the strongest entries.
func Aggregate(candidates []types.CandidatePlace, modelResult *types.SuggestionResult, prefs []types.UserPreference, limit int) []types.TravelRecommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}

	merged := make(map[string]types.TravelRecommendation)
	// Provider records are keyed by provider id, but a model suggestion for
	// the same place only knows the place by name and coordinates. The
	// synthetic index lets the two sources collide.
	synthetic := make(map[string]string)
	order := make([]string, 0, len(candidates))

	for _, c := range candidates {
		rec := fromCandidate(c, prefs)
		key := identityKey(c.ProviderID, c.Name, c.Location)
		if existing, ok := merged[key]; ok {
			merged[key] = resolveDuplicate(existing, rec)
			continue
		}
		merged[key] = rec
		order = append(order, key)
		syn := syntheticKey(c.Name, c.Location)
		if _, ok := synthetic[syn]; !ok {
			synthetic[syn] = key
		}
	}

	if modelResult != nil {
		for _, s := range modelResult.Suggestions {
			rec := fromSuggestion(s, prefs)
			syn := syntheticKey(s.Name, s.Location)
			key, ok := synthetic[syn]
			if !ok {
				key = syn
				synthetic[syn] = key
			}
			if existing, ok := merged[key]; ok {
				merged[key] = resolveDuplicate(existing, rec)
				continue
			}
			merged[key] = rec
			order = append(order, key)
		}
	}

	recs := make([]types.TravelRecommendation, 0, len(merged))
	for _, key := range order {
		recs = append(recs, merged[key])
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if ra, rb := a.Importance.Rank(), b.Importance.Rank(); ra != rb {
			return ra > rb
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.DistanceKm < b.DistanceKm
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// identityKey resolves cross-source identity. Provider ids win when present;
// everything else falls back to normalized name plus coordinates rounded to
// three decimals, roughly a city block.
func identityKey(providerID, name string, loc types.Location) string {
	if providerID != "" {
		return providerID
	}
	return syntheticKey(name, loc)
}

func syntheticKey(name string, loc types.Location) string {
	return fmt.Sprintf("%s:%.3f,%.3f", strings.ToLower(strings.TrimSpace(name)), loc.Latitude, loc.Longitude)
}

// resolveDuplicate picks the surviving record when two sources describe the
// same place. The loser is discarded entirely, never blended.
func resolveDuplicate(a, b types.TravelRecommendation) types.TravelRecommendation {
	if a.Source != b.Source {
		model, other := a, b
		if b.Source == types.SourceModel {
			model, other = b, a
		}
		if model.Rationale != "" {
			return model
		}
		if ratingOrZero(model.Rating) >= ratingOrZero(other.Rating) {
			return model
		}
		return other
	}
	if ratingOrZero(b.Rating) > ratingOrZero(a.Rating) {
		return b
	}
	return a
}

func fromCandidate(c types.CandidatePlace, prefs []types.UserPreference) types.TravelRecommendation {
	rating := ratingOrZero(c.Rating)
	return types.TravelRecommendation{
		ID:         identityKey(c.ProviderID, c.Name, c.Location),
		Name:       c.Name,
		Category:   c.Category,
		Location:   c.Location,
		DistanceKm: c.DistanceKm,
		Rating:     c.Rating,
		Importance: tierFor(rating, c.DistanceKm),
		Tags:       c.Tags,
		Source:     types.SourceProvider,
		Score:      score(rating, c.Category, c.DistanceKm, len(c.Tags), prefs),
	}
}

func fromSuggestion(s types.ModelSuggestion, prefs []types.UserPreference) types.TravelRecommendation {
	importance := s.Importance
	if importance.Rank() == 0 {
		importance = types.TierWorthCheckingOut
	}
	return types.TravelRecommendation{
		ID:         syntheticKey(s.Name, s.Location),
		Name:       s.Name,
		Category:   s.Category,
		Location:   s.Location,
		DistanceKm: s.DistanceKm,
		Importance: importance,
		Rationale:  s.Rationale,
		Tags:       s.Tags,
		Source:     types.SourceModel,
		Score:      score(0, s.Category, s.DistanceKm, len(s.Tags), prefs),
	}
}

// tierFor classifies a provider candidate from rating and route proximity.
func tierFor(rating, distanceKm float64) types.ImportanceTier {
	switch {
	case rating >= mustVisitMinRating && distanceKm <= mustVisitMaxKm:
		return types.TierMustVisit
	case rating >= recommendedMinRating && distanceKm <= recommendedMaxKm:
		return types.TierHighlyRecommended
	default:
		return types.TierWorthCheckingOut
	}
}

// score is the ranking signal inside a tier. Rating and user interest
// dominate, route proximity adds up to 3 points, tag richness up to 2.
func score(rating float64, category string, distanceKm float64, tagCount int, prefs []types.UserPreference) float64 {
	s := rating
	s += preferences.InterestScore(category, prefs)
	if proximity := 3 - distanceKm; proximity > 0 {
		s += proximity
	}
	tagBonus := float64(tagCount) / 5
	if tagBonus > 2 {
		tagBonus = 2
	}
	return s + tagBonus
}

func ratingOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}
