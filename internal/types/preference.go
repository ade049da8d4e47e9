package types

// UserPreference is one interest-category weight. Categories form a closed,
// known set; the collection is keyed by Category with last-write-wins updates.
type UserPreference struct {
	Category      string `json:"category"`
	InterestLevel int    `json:"interest_level"` // 1..5
	Description   string `json:"description,omitempty"`
}

// MinInterestLevel and MaxInterestLevel bound the interest scale.
const (
	MinInterestLevel = 1
	MaxInterestLevel = 5
)

// UpdatePreferenceRequest is the body for setting one category's weight.
type UpdatePreferenceRequest struct {
	InterestLevel int    `json:"interest_level"`
	Description   string `json:"description,omitempty"`
}
