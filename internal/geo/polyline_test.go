package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

func TestDecodePolyline(t *testing.T) {
	t.Run("reference fixture", func(t *testing.T) {
		// Published example from the polyline format documentation.
		points, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
		require.NoError(t, err)
		require.Len(t, points, 3)

		expected := []types.Location{
			{Latitude: 38.5, Longitude: -120.2},
			{Latitude: 40.7, Longitude: -120.95},
			{Latitude: 43.252, Longitude: -126.453},
		}
		for i, want := range expected {
			assert.InDelta(t, want.Latitude, points[i].Latitude, 1e-9)
			assert.InDelta(t, want.Longitude, points[i].Longitude, 1e-9)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		points, err := DecodePolyline("")
		assert.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("truncated mid-codeword", func(t *testing.T) {
		// '_' has the continuation bit set, so a lone '_' never terminates.
		_, err := DecodePolyline("_")
		assert.ErrorIs(t, err, ErrMalformedPolyline)
	})

	t.Run("missing longitude codeword", func(t *testing.T) {
		_, err := DecodePolyline("_p~iF")
		assert.ErrorIs(t, err, ErrMalformedPolyline)
	})
}
