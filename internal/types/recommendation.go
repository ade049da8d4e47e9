package types

import "github.com/google/uuid"

// ImportanceTier classifies how strongly a place is recommended.
type ImportanceTier string

const (
	TierMustVisit         ImportanceTier = "must_visit"
	TierHighlyRecommended ImportanceTier = "highly_recommended"
	TierWorthCheckingOut  ImportanceTier = "worth_checking_out"
)

// Rank returns the sort weight of the tier. Unknown tiers rank lowest.
func (t ImportanceTier) Rank() int {
	switch t {
	case TierMustVisit:
		return 3
	case TierHighlyRecommended:
		return 2
	case TierWorthCheckingOut:
		return 1
	}
	return 0
}

// RecommendationSource records which data source a surviving recommendation
// ultimately came from.
type RecommendationSource string

const (
	SourceProvider RecommendationSource = "provider"
	SourceModel    RecommendationSource = "model"
)

// CandidatePlace is the normalized output of the places provider.
// ProviderID is the dedup key within this source.
type CandidatePlace struct {
	ProviderID string   `json:"provider_id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Location   Location `json:"location"`
	Rating     *float64 `json:"rating,omitempty"`
	DistanceKm float64  `json:"distance_km"`
	Tags       []string `json:"tags,omitempty"`
}

// ModelSuggestion is the normalized output of the suggestion model. It has no
// stable external id; identity is synthesized from name and rounded location.
type ModelSuggestion struct {
	Name                  string         `json:"name"`
	Category              string         `json:"category"`
	Location              Location       `json:"location"`
	DistanceKm            float64        `json:"distance_km"`
	Importance            ImportanceTier `json:"importance"`
	Rationale             string         `json:"rationale"`
	Tags                  []string       `json:"tags,omitempty"`
	EstimatedVisitMinutes int            `json:"estimated_visit_minutes,omitempty"`
	CostLevel             string         `json:"cost_level,omitempty"`
	BestTimeToVisit       string         `json:"best_time_to_visit,omitempty"`
}

// SuggestionResult is everything the suggestion model contributes to one
// planning request.
type SuggestionResult struct {
	Suggestions []ModelSuggestion `json:"suggestions"`
	Narrative   string            `json:"narrative"`
	Tips        []string          `json:"tips,omitempty"`
}

// TravelRecommendation is the aggregator's output record. Unique by identity
// key within one result set; immutable once constructed.
type TravelRecommendation struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Category   string               `json:"category"`
	Location   Location             `json:"location"`
	DistanceKm float64              `json:"distance_km"`
	Rating     *float64             `json:"rating,omitempty"`
	Importance ImportanceTier       `json:"importance"`
	Rationale  string               `json:"rationale"`
	Tags       []string             `json:"tags,omitempty"`
	Source     RecommendationSource `json:"source"`
	Score      float64              `json:"score"`
}

// RouteSummary is the textual route context handed to the suggestion model.
type RouteSummary struct {
	StartAddress    string     `json:"start_address"`
	EndAddress      string     `json:"end_address"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes float64    `json:"duration_minutes"`
	Mode            TravelMode `json:"mode"`
}

// TripPlan is the combined result of one planning request.
type TripPlan struct {
	ID              uuid.UUID              `json:"id"`
	Route           Route                  `json:"route"`
	Recommendations []TravelRecommendation `json:"recommendations"`
	Narrative       string                 `json:"narrative,omitempty"`
	Tips            []string               `json:"tips,omitempty"`
}
