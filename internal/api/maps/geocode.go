package maps

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) (types.Location, error) {
	ctx, span := otel.Tracer("MapsClient").Start(ctx, "Geocode", trace.WithAttributes(
		attribute.String("geocode.address", address),
	))
	defer span.End()

	l := c.logger.With(slog.String("method", "Geocode"), slog.String("address", address))

	cacheKey := "geocode:" + strings.ToLower(strings.TrimSpace(address))
	if cached, found := c.cache.Get(cacheKey); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		span.SetStatus(codes.Ok, "Geocode served from cache")
		return cached.(types.Location), nil
	}

	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "geocode", "/maps/api/geocode/json", params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocode request failed")
		return types.Location{}, err
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		l.WarnContext(ctx, "Geocode found no match")
		span.SetStatus(codes.Error, "No geocode match")
		return types.Location{}, fmt.Errorf("geocoding %q: %w", address, types.ErrLocationNotFound)
	default:
		err := statusError("geocode", resp.Status, resp.ErrorMessage)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocode returned error status")
		return types.Location{}, err
	}

	if len(resp.Results) == 0 {
		span.SetStatus(codes.Error, "Geocode returned OK with no results")
		return types.Location{}, fmt.Errorf("geocoding %q: %w", address, types.ErrLocationNotFound)
	}

	first := resp.Results[0]
	loc := types.Location{
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
		Address:   first.FormattedAddress,
	}
	c.cache.SetDefault(cacheKey, loc)

	l.DebugContext(ctx, "Geocode resolved", slog.String("resolved", loc.Address))
	span.SetStatus(codes.Ok, "Geocode resolved")
	return loc, nil
}
