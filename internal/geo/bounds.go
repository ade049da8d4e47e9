package geo

import (
	"github.com/paulmach/orb"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// PathBounds returns the bounding box of the path, padded by padDeg degrees
// on every side. The box is a cheap prefilter for candidates before the
// exact haversine check.
func PathBounds(points []types.Location, padDeg float64) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{}
	}

	first := orb.Point{points[0].Longitude, points[0].Latitude}
	bound := orb.Bound{Min: first, Max: first}
	for _, p := range points[1:] {
		bound = bound.Extend(orb.Point{p.Longitude, p.Latitude})
	}
	return bound.Pad(padDeg)
}

// InBounds reports whether loc falls inside the bounding box.
func InBounds(b orb.Bound, loc types.Location) bool {
	return b.Contains(orb.Point{loc.Longitude, loc.Latitude})
}
