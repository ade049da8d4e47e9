package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

func TestHaversineKm(t *testing.T) {
	lisbon := types.Location{Latitude: 38.7223, Longitude: -9.1393}
	porto := types.Location{Latitude: 41.1579, Longitude: -8.6291}

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		a := types.Location{Latitude: 0, Longitude: 0}
		b := types.Location{Latitude: 0, Longitude: 1}
		assert.InDelta(t, 111.19, HaversineKm(a, b), 0.05)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, HaversineKm(lisbon, porto), HaversineKm(porto, lisbon), 1e-9)
	})

	t.Run("zero for identical points", func(t *testing.T) {
		assert.InDelta(t, 0, HaversineKm(lisbon, lisbon), 1e-9)
	})

	t.Run("known city pair", func(t *testing.T) {
		// Lisbon to Porto is roughly 274 km great-circle.
		assert.InDelta(t, 274, HaversineKm(lisbon, porto), 5)
	})
}

func TestMinDistanceKm(t *testing.T) {
	path := []types.Location{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 0, Longitude: 2},
	}

	t.Run("nearest path point wins", func(t *testing.T) {
		loc := types.Location{Latitude: 0, Longitude: 1.1}
		assert.InDelta(t, HaversineKm(path[1], loc), MinDistanceKm(path, loc), 1e-9)
	})

	t.Run("empty path is infinitely far", func(t *testing.T) {
		assert.True(t, math.IsInf(MinDistanceKm(nil, types.Location{}), 1))
	})
}
