package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-route-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

var _ Client = (*GoogleClient)(nil)

// Client is the places provider surface the rest of the application depends
// on. Implementations translate provider payloads into domain types and never
// leak provider schemas upward.
type Client interface {
	// Geocode resolves free text into coordinates.
	// Returns ErrLocationNotFound when the provider has no match.
	Geocode(ctx context.Context, address string) (types.Location, error)

	// Directions computes a route between two resolved locations.
	Directions(ctx context.Context, origin, destination types.Location, mode types.TravelMode) (*types.Route, error)

	// NearbySearch finds places of one category around a point. An empty
	// result is not an error.
	NearbySearch(ctx context.Context, center types.Location, category string, radiusM float64) ([]types.CandidatePlace, error)

	// Autocomplete returns place predictions for partial input.
	Autocomplete(ctx context.Context, input string) ([]types.PlacePrediction, error)

	// PlaceDetails resolves a prediction's place id into coordinates.
	PlaceDetails(ctx context.Context, placeID string) (types.Location, error)
}

// Options configures the Google Maps web service client.
type Options struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

// GoogleClient talks to the Google Maps web services. Outbound calls share
// one rate limiter so a single plan request cannot exhaust the provider
// quota, and stable lookups (geocoding, place details) are cached.
type GoogleClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	cache      *gocache.Cache
	metrics    *metrics.AppMetrics
}

func NewGoogleClient(opts Options, logger *slog.Logger, m *metrics.AppMetrics) *GoogleClient {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 10
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 5
	}

	return &GoogleClient{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
		metrics:    m,
	}
}

// get performs one rate limited provider request and decodes the JSON body.
func (c *GoogleClient) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", endpoint, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.recordRequest(ctx, endpoint, time.Since(start), err == nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "Places provider request failed",
			slog.String("endpoint", endpoint), slog.Any("error", err))
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s request returned status %s", endpoint, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

func (c *GoogleClient) recordRequest(ctx context.Context, endpoint string, elapsed time.Duration, ok bool) {
	if c.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.Bool("success", ok),
	)
	c.metrics.ProviderRequestsTotal.Add(ctx, 1, attrs)
	c.metrics.ProviderRequestDurationSeconds.Record(ctx, elapsed.Seconds(), attrs)
}

// statusError maps a non-OK provider status into an error. ZERO_RESULTS is
// handled per endpoint before this is called.
func statusError(endpoint, status, message string) error {
	if message != "" {
		return fmt.Errorf("%s returned status %s: %s", endpoint, status, message)
	}
	return fmt.Errorf("%s returned status %s", endpoint, status)
}

func latLngParam(loc types.Location) string {
	return fmt.Sprintf("%f,%f", loc.Latitude, loc.Longitude)
}
