package maps

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/api"
)

// Handler exposes location lookup endpoints backed by the places provider.
type Handler struct {
	client Client
	logger *slog.Logger
}

// NewHandler creates a new maps handler instance.
func NewHandler(client Client, logger *slog.Logger) *Handler {
	instanceAddress := fmt.Sprintf("%p", logger)
	slog.Info("Creating maps Handler", slog.String("logger_address", instanceAddress), slog.Bool("logger_is_nil", logger == nil))
	if logger == nil {
		panic("PANIC: Attempting to create maps Handler with nil logger!")
	}

	return &Handler{
		client: client,
		logger: logger,
	}
}

// Autocomplete godoc
// @Summary      Autocomplete Locations
// @Description  Returns place predictions for a partial location query.
// @Tags         Places
// @Produce      json
// @Param        input query string true "Partial location text"
// @Success      200 {array} types.PlacePrediction "Predictions"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /places/autocomplete [get]
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MapsHandler").Start(r.Context(), "Autocomplete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/autocomplete"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Autocomplete"))

	input := r.URL.Query().Get("input")
	if input == "" {
		l.WarnContext(ctx, "Missing input query parameter")
		span.SetStatus(codes.Error, "Missing input")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Query parameter 'input' is required")
		return
	}

	predictions, err := h.client.Autocomplete(ctx, input)
	if err != nil {
		l.ErrorContext(ctx, "Autocomplete failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Autocomplete failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch predictions")
		return
	}

	span.SetStatus(codes.Ok, "Predictions returned")
	api.WriteJSONResponse(w, r, http.StatusOK, predictions)
}
