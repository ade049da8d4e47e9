package geo

import "github.com/FACorreiaa/go-route-recommendations/internal/types"

// SampleRoutePoints selects an evenly-spaced subset of points preserving
// order. The first point is always included. Used to bound the number of
// provider queries issued along a long route.
func SampleRoutePoints(points []types.Location, targetCount int) []types.Location {
	if len(points) == 0 {
		return nil
	}
	if targetCount < 1 {
		targetCount = 1
	}

	stride := len(points) / targetCount
	if stride < 1 {
		stride = 1
	}

	sampled := make([]types.Location, 0, targetCount)
	for i := 0; i < len(points); i += stride {
		sampled = append(sampled, points[i])
	}
	return sampled
}
