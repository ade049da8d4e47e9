package geo

import (
	"errors"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// ErrMalformedPolyline is returned when an encoded polyline ends in the
// middle of a codeword.
var ErrMalformedPolyline = errors.New("malformed polyline: input ends mid-codeword")

// DecodePolyline decodes the standard 5-bit-chunk signed-delta polyline
// encoding (1e5 precision) used by the major mapping SDKs into an ordered
// list of points.
func DecodePolyline(encoded string) ([]types.Location, error) {
	var points []types.Location
	var lat, lng int64

	index := 0
	for index < len(encoded) {
		dlat, n, err := decodeDelta(encoded[index:])
		if err != nil {
			return nil, err
		}
		index += n
		lat += dlat

		dlng, n, err := decodeDelta(encoded[index:])
		if err != nil {
			return nil, err
		}
		index += n
		lng += dlng

		points = append(points, types.Location{
			Latitude:  float64(lat) / 1e5,
			Longitude: float64(lng) / 1e5,
		})
	}
	return points, nil
}

// decodeDelta reads one variable-length signed value and returns it together
// with the number of bytes consumed.
func decodeDelta(s string) (int64, int, error) {
	var result int64
	var shift uint
	for i := 0; i < len(s); i++ {
		b := int64(s[i]) - 63
		result |= (b & 0x1f) << shift
		if b < 0x20 {
			value := result >> 1
			if result&1 != 0 {
				value = ^value
			}
			return value, i + 1, nil
		}
		shift += 5
	}
	return 0, 0, ErrMalformedPolyline
}
