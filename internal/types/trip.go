package types

// PlanTripRequest is the body of a trip planning request. Start and End are
// free text resolved through geocoding; Mode defaults to driving.
type PlanTripRequest struct {
	Start string     `json:"start"`
	End   string     `json:"end"`
	Mode  TravelMode `json:"mode,omitempty"`
	Limit int        `json:"limit,omitempty"`
}
