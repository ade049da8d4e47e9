package types

// Location is an immutable coordinate pair, optionally carrying the
// formatted address it was resolved from.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// TravelMode is the transportation mode requested for a route.
type TravelMode string

const (
	ModeDriving   TravelMode = "driving"
	ModeWalking   TravelMode = "walking"
	ModeBicycling TravelMode = "bicycling"
	ModeTransit   TravelMode = "transit"
)

// Valid reports whether the mode is one the directions provider accepts.
func (m TravelMode) Valid() bool {
	switch m {
	case ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return true
	}
	return false
}

// Route is created once per planning request and never mutated.
// EncodedPath is the provider's overview polyline, decoded only by the geo package.
type Route struct {
	Start           Location   `json:"start"`
	End             Location   `json:"end"`
	Waypoints       []Location `json:"waypoints,omitempty"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes float64    `json:"duration_minutes"`
	EncodedPath     string     `json:"encoded_path"`
}

// PlacePrediction is a single autocomplete result for a location text query.
type PlacePrediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}
