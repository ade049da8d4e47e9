package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-route-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/maps"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/preferences"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/recommendations"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/suggestions"
	"github.com/FACorreiaa/go-route-recommendations/internal/geo"
	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// boundsPadDeg pads the route bounding box used to prefilter candidates
// before the exact distance check.
const boundsPadDeg = 0.05

// maxConcurrentSearches bounds the nearby search fan-out.
const maxConcurrentSearches = 8

var _ Service = (*ServiceImpl)(nil)

// Service plans a trip end to end: resolve locations, route, search places
// along the way, ask the suggestion model, and rank everything.
type Service interface {
	PlanTrip(ctx context.Context, req types.PlanTripRequest) (*types.TripPlan, error)
}

// Options tunes the planning pipeline.
type Options struct {
	SearchRadiusM float64
	SamplePoints  int
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger      *slog.Logger
	maps        maps.Client
	prefs       preferences.Service
	suggestions suggestions.Service
	opts        Options
	metrics     *metrics.AppMetrics
}

func NewServiceImpl(mapsClient maps.Client, prefsService preferences.Service, suggestionService suggestions.Service, opts Options, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	if opts.SearchRadiusM <= 0 {
		opts.SearchRadiusM = 5000
	}
	if opts.SamplePoints <= 0 {
		opts.SamplePoints = 10
	}
	return &ServiceImpl{
		logger:      logger,
		maps:        mapsClient,
		prefs:       prefsService,
		suggestions: suggestionService,
		opts:        opts,
		metrics:     m,
	}
}

func (s *ServiceImpl) PlanTrip(ctx context.Context, req types.PlanTripRequest) (*types.TripPlan, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "PlanTrip", trace.WithAttributes(
		attribute.String("trip.start", req.Start),
		attribute.String("trip.end", req.End),
		attribute.String("trip.mode", string(req.Mode)),
	))
	defer span.End()

	start := time.Now()
	l := s.logger.With(slog.String("method", "PlanTrip"))

	plan, err := s.planTrip(ctx, l, req)
	s.recordPlan(ctx, time.Since(start), err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Trip planning failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("trip.recommendations", len(plan.Recommendations)))
	span.SetStatus(codes.Ok, "Trip planned")
	return plan, nil
}

func (s *ServiceImpl) planTrip(ctx context.Context, l *slog.Logger, req types.PlanTripRequest) (*types.TripPlan, error) {
	if req.Start == "" || req.End == "" {
		return nil, fmt.Errorf("start and end locations are required: %w", types.ErrValidation)
	}
	mode := req.Mode
	if mode == "" {
		mode = types.ModeDriving
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unsupported travel mode %q: %w", req.Mode, types.ErrValidation)
	}

	origin, err := s.resolveLocation(ctx, req.Start)
	if err != nil {
		return nil, fmt.Errorf("resolving start: %w", err)
	}
	destination, err := s.resolveLocation(ctx, req.End)
	if err != nil {
		return nil, fmt.Errorf("resolving end: %w", err)
	}

	route, err := s.maps.Directions(ctx, origin, destination, mode)
	if err != nil {
		return nil, fmt.Errorf("routing: %w", err)
	}

	path, err := geo.DecodePolyline(route.EncodedPath)
	if err != nil {
		return nil, fmt.Errorf("decoding route path: %w", err)
	}
	if len(path) == 0 {
		path = []types.Location{origin, destination}
	}
	samplePoints := geo.SampleRoutePoints(path, s.opts.SamplePoints)

	prefs, err := s.prefs.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	categories := preferences.SearchCategories(prefs)

	candidates := s.searchAlongRoute(ctx, l, path, samplePoints, categories)

	summary := types.RouteSummary{
		StartAddress:    route.Start.Address,
		EndAddress:      route.End.Address,
		DistanceKm:      route.DistanceKm,
		DurationMinutes: route.DurationMinutes,
		Mode:            mode,
	}

	// The suggestion model sees what the provider already found so it can
	// fill gaps instead of repeating them. Its failure never sinks the plan;
	// provider results alone still make a useful answer.
	var narrative string
	var tips []string
	modelResult, err := s.suggestions.SuggestAlongRoute(ctx, summary, prefs, candidates)
	if err != nil {
		l.WarnContext(ctx, "Suggestion model unavailable, continuing with provider results", slog.Any("error", err))
		modelResult = nil
	} else {
		narrative = modelResult.Narrative
		tips = modelResult.Tips
		for i := range modelResult.Suggestions {
			modelResult.Suggestions[i].DistanceKm = geo.MinDistanceKm(path, modelResult.Suggestions[i].Location)
		}
	}

	recs := recommendations.Aggregate(candidates, modelResult, prefs, req.Limit)

	return &types.TripPlan{
		ID:              uuid.New(),
		Route:           *route,
		Recommendations: recs,
		Narrative:       narrative,
		Tips:            tips,
	}, nil
}

// resolveLocation turns free text into coordinates. Geocoding comes first;
// when it has no match the autocomplete index often still does, so the best
// prediction is resolved through place details before giving up.
func (s *ServiceImpl) resolveLocation(ctx context.Context, text string) (types.Location, error) {
	loc, err := s.maps.Geocode(ctx, text)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, types.ErrLocationNotFound) {
		return types.Location{}, err
	}

	predictions, err := s.maps.Autocomplete(ctx, text)
	if err != nil {
		return types.Location{}, err
	}
	if len(predictions) == 0 {
		return types.Location{}, fmt.Errorf("no match for %q: %w", text, types.ErrLocationNotFound)
	}
	return s.maps.PlaceDetails(ctx, predictions[0].PlaceID)
}

// searchAlongRoute fans out one nearby search per sample point and category.
// Individual failures only cost their slice of results.
func (s *ServiceImpl) searchAlongRoute(ctx context.Context, l *slog.Logger, path, samplePoints []types.Location, categories []string) []types.CandidatePlace {
	bounds := geo.PathBounds(path, boundsPadDeg)

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var candidates []types.CandidatePlace
	var failures int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSearches)

	for _, point := range samplePoints {
		for _, category := range categories {
			point, category := point, category
			g.Go(func() error {
				found, err := s.maps.NearbySearch(gctx, point, category, s.opts.SearchRadiusM)
				if err != nil {
					l.WarnContext(gctx, "Nearby search failed",
						slog.String("category", category), slog.Any("error", err))
					mu.Lock()
					failures++
					mu.Unlock()
					return nil
				}

				mu.Lock()
				defer mu.Unlock()
				for _, c := range found {
					if _, ok := seen[c.ProviderID]; ok {
						continue
					}
					if !geo.InBounds(bounds, c.Location) {
						continue
					}
					seen[c.ProviderID] = struct{}{}
					c.DistanceKm = geo.MinDistanceKm(path, c.Location)
					candidates = append(candidates, c)
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	if failures > 0 {
		l.WarnContext(ctx, "Some nearby searches failed",
			slog.Int("failures", failures), slog.Int("candidates", len(candidates)))
	}
	return candidates
}

func (s *ServiceImpl) recordPlan(ctx context.Context, elapsed time.Duration, ok bool) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("success", ok))
	s.metrics.PlanRequestsTotal.Add(ctx, 1, attrs)
	s.metrics.PlanDurationSeconds.Record(ctx, elapsed.Seconds(), attrs)
}
