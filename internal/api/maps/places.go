package maps

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

type nearbySearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating   *float64 `json:"rating,omitempty"`
		Types    []string `json:"types,omitempty"`
		Vicinity string   `json:"vicinity,omitempty"`
	} `json:"results"`
}

// NearbySearch returns candidate places of one category around a point.
// Distance from the route is unknown at this layer; callers fill it in.
func (c *GoogleClient) NearbySearch(ctx context.Context, center types.Location, category string, radiusM float64) ([]types.CandidatePlace, error) {
	ctx, span := otel.Tracer("MapsClient").Start(ctx, "NearbySearch", trace.WithAttributes(
		attribute.String("search.category", category),
		attribute.Float64("search.radius_m", radiusM),
	))
	defer span.End()

	l := c.logger.With(slog.String("method", "NearbySearch"), slog.String("category", category))

	params := url.Values{}
	params.Set("location", latLngParam(center))
	params.Set("radius", fmt.Sprintf("%.0f", radiusM))
	params.Set("type", category)

	var resp nearbySearchResponse
	if err := c.get(ctx, "nearby_search", "/maps/api/place/nearbysearch/json", params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Nearby search request failed")
		return nil, err
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		// A quiet stretch of route is normal, not an error.
		span.SetAttributes(attribute.Int("search.results", 0))
		span.SetStatus(codes.Ok, "No places in this area")
		return nil, nil
	default:
		err := statusError("nearby_search", resp.Status, resp.ErrorMessage)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Nearby search returned error status")
		return nil, err
	}

	candidates := make([]types.CandidatePlace, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, types.CandidatePlace{
			ProviderID: r.PlaceID,
			Name:       r.Name,
			Category:   category,
			Location: types.Location{
				Latitude:  r.Geometry.Location.Lat,
				Longitude: r.Geometry.Location.Lng,
				Address:   r.Vicinity,
			},
			Rating: r.Rating,
			Tags:   r.Types,
		})
	}

	l.DebugContext(ctx, "Nearby search completed", slog.Int("results", len(candidates)))
	span.SetAttributes(attribute.Int("search.results", len(candidates)))
	span.SetStatus(codes.Ok, "Nearby search completed")
	return candidates, nil
}
