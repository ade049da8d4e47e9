package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	ProviderRequestsTotal          metric.Int64Counter
	ProviderRequestDurationSeconds metric.Float64Histogram
	SuggestionRequestsTotal        metric.Int64Counter
	SuggestionParseFailuresTotal   metric.Int64Counter
	PlanRequestsTotal              metric.Int64Counter
	PlanDurationSeconds            metric.Float64Histogram
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("RouteRecommendations")
		var err error
		m := &AppMetrics{}

		m.ProviderRequestsTotal, err = meter.Int64Counter(
			"places_provider_requests_total",
			metric.WithDescription("Total number of places provider API requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_provider_requests_total: %v", err)
		}

		m.ProviderRequestDurationSeconds, err = meter.Float64Histogram(
			"places_provider_request_duration_seconds",
			metric.WithDescription("Duration of places provider API requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_provider_request_duration_seconds: %v", err)
		}

		m.SuggestionRequestsTotal, err = meter.Int64Counter(
			"suggestion_requests_total",
			metric.WithDescription("Total number of suggestion model invocations"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_requests_total: %v", err)
		}

		m.SuggestionParseFailuresTotal, err = meter.Int64Counter(
			"suggestion_parse_failures_total",
			metric.WithDescription("Total number of suggestion model responses that failed to parse"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_parse_failures_total: %v", err)
		}

		m.PlanRequestsTotal, err = meter.Int64Counter(
			"trip_plan_requests_total",
			metric.WithDescription("Total number of trip planning requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_plan_requests_total: %v", err)
		}

		m.PlanDurationSeconds, err = meter.Float64Histogram(
			"trip_plan_duration_seconds",
			metric.WithDescription("Duration of trip planning requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_plan_duration_seconds: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		// This indicates a programming error - InitAppMetrics must be called at startup.
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
