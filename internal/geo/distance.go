package geo

import (
	"math"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// earthRadiusKm is the mean Earth radius.
const earthRadiusKm = 6371

// HaversineKm computes the great-circle distance between two points in
// kilometers. Symmetric; zero iff both points coincide (within floating
// tolerance).
func HaversineKm(a, b types.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// MinDistanceKm returns the distance from loc to the nearest of the given
// path points. Returns +Inf for an empty path.
func MinDistanceKm(path []types.Location, loc types.Location) float64 {
	min := math.Inf(1)
	for _, p := range path {
		if d := HaversineKm(p, loc); d < min {
			min = d
		}
	}
	return min
}
