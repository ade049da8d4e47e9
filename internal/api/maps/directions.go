package maps

import (
	"context"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			StartAddress string `json:"start_address"`
			EndAddress   string `json:"end_address"`
			Distance     struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *GoogleClient) Directions(ctx context.Context, origin, destination types.Location, mode types.TravelMode) (*types.Route, error) {
	ctx, span := otel.Tracer("MapsClient").Start(ctx, "Directions", trace.WithAttributes(
		attribute.String("directions.mode", string(mode)),
	))
	defer span.End()

	params := url.Values{}
	params.Set("origin", latLngParam(origin))
	params.Set("destination", latLngParam(destination))
	params.Set("mode", string(mode))

	var resp directionsResponse
	if err := c.get(ctx, "directions", "/maps/api/directions/json", params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Directions request failed")
		return nil, err
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		span.SetStatus(codes.Error, "No route between endpoints")
		return nil, fmt.Errorf("no %s route between endpoints: %w", mode, types.ErrNotFound)
	default:
		err := statusError("directions", resp.Status, resp.ErrorMessage)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Directions returned error status")
		return nil, err
	}

	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		span.SetStatus(codes.Error, "Directions returned OK with no routes")
		return nil, fmt.Errorf("no %s route between endpoints: %w", mode, types.ErrNotFound)
	}

	best := resp.Routes[0]
	var distanceM, durationS int
	for _, leg := range best.Legs {
		distanceM += leg.Distance.Value
		durationS += leg.Duration.Value
	}

	route := &types.Route{
		Start: types.Location{
			Latitude:  origin.Latitude,
			Longitude: origin.Longitude,
			Address:   best.Legs[0].StartAddress,
		},
		End: types.Location{
			Latitude:  destination.Latitude,
			Longitude: destination.Longitude,
			Address:   best.Legs[len(best.Legs)-1].EndAddress,
		},
		DistanceKm:      float64(distanceM) / 1000,
		DurationMinutes: float64(durationS) / 60,
		EncodedPath:     best.OverviewPolyline.Points,
	}

	span.SetAttributes(
		attribute.Float64("directions.distance_km", route.DistanceKm),
		attribute.Float64("directions.duration_minutes", route.DurationMinutes),
	)
	span.SetStatus(codes.Ok, "Route computed")
	return route, nil
}
