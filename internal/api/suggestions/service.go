package suggestions

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-route-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service asks the generative model for stops along a planned route.
type Service interface {
	// SuggestAlongRoute returns model suggestions for the route, informed by
	// the user's interests and the provider candidates already found.
	SuggestAlongRoute(ctx context.Context, route types.RouteSummary, prefs []types.UserPreference, candidates []types.CandidatePlace) (*types.SuggestionResult, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger      *slog.Logger
	aiClient    AIClient
	temperature float32
	metrics     *metrics.AppMetrics
}

func NewServiceImpl(aiClient AIClient, temperature float32, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		aiClient:    aiClient,
		temperature: temperature,
		metrics:     m,
	}
}

func (s *ServiceImpl) SuggestAlongRoute(ctx context.Context, route types.RouteSummary, prefs []types.UserPreference, candidates []types.CandidatePlace) (*types.SuggestionResult, error) {
	ctx, span := otel.Tracer("SuggestionsService").Start(ctx, "SuggestAlongRoute", trace.WithAttributes(
		attribute.String("route.start", route.StartAddress),
		attribute.String("route.end", route.EndAddress),
		attribute.Int("route.candidates", len(candidates)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "SuggestAlongRoute"))

	prompt := buildRoutePrompt(route, prefs, candidates)
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](s.temperature),
	}

	raw, err := s.aiClient.GenerateContent(ctx, prompt, config)
	s.countRequest(ctx, err == nil)
	if err != nil {
		l.ErrorContext(ctx, "Suggestion model call failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model call failed")
		return nil, err
	}

	result, err := parseSuggestionResult(raw)
	if err != nil {
		l.ErrorContext(ctx, "Failed to parse suggestion response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Response parse failed")
		if s.metrics != nil {
			s.metrics.SuggestionParseFailuresTotal.Add(ctx, 1)
		}
		return nil, err
	}

	l.DebugContext(ctx, "Suggestions generated", slog.Int("count", len(result.Suggestions)))
	span.SetAttributes(attribute.Int("suggestions.count", len(result.Suggestions)))
	span.SetStatus(codes.Ok, "Suggestions generated")
	return result, nil
}

func (s *ServiceImpl) countRequest(ctx context.Context, ok bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.SuggestionRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", ok)))
}
