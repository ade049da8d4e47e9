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

type autocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Predictions  []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

type placeDetailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Result       struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

func (c *GoogleClient) Autocomplete(ctx context.Context, input string) ([]types.PlacePrediction, error) {
	ctx, span := otel.Tracer("MapsClient").Start(ctx, "Autocomplete")
	defer span.End()

	params := url.Values{}
	params.Set("input", input)

	var resp autocompleteResponse
	if err := c.get(ctx, "autocomplete", "/maps/api/place/autocomplete/json", params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Autocomplete request failed")
		return nil, err
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		span.SetStatus(codes.Ok, "No predictions")
		return nil, nil
	default:
		err := statusError("autocomplete", resp.Status, resp.ErrorMessage)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Autocomplete returned error status")
		return nil, err
	}

	predictions := make([]types.PlacePrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		predictions = append(predictions, types.PlacePrediction{
			PlaceID:     p.PlaceID,
			Description: p.Description,
		})
	}

	span.SetAttributes(attribute.Int("autocomplete.predictions", len(predictions)))
	span.SetStatus(codes.Ok, "Autocomplete completed")
	return predictions, nil
}

func (c *GoogleClient) PlaceDetails(ctx context.Context, placeID string) (types.Location, error) {
	ctx, span := otel.Tracer("MapsClient").Start(ctx, "PlaceDetails", trace.WithAttributes(
		attribute.String("place.id", placeID),
	))
	defer span.End()

	cacheKey := "details:" + placeID
	if cached, found := c.cache.Get(cacheKey); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		span.SetStatus(codes.Ok, "Place details served from cache")
		return cached.(types.Location), nil
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "geometry,formatted_address")

	var resp placeDetailsResponse
	if err := c.get(ctx, "place_details", "/maps/api/place/details/json", params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Place details request failed")
		return types.Location{}, err
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		span.SetStatus(codes.Error, "Place not found")
		return types.Location{}, fmt.Errorf("place %q: %w", placeID, types.ErrLocationNotFound)
	default:
		err := statusError("place_details", resp.Status, resp.ErrorMessage)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Place details returned error status")
		return types.Location{}, err
	}

	loc := types.Location{
		Latitude:  resp.Result.Geometry.Location.Lat,
		Longitude: resp.Result.Geometry.Location.Lng,
		Address:   resp.Result.FormattedAddress,
	}
	c.cache.SetDefault(cacheKey, loc)

	span.SetStatus(codes.Ok, "Place details resolved")
	return loc, nil
}
