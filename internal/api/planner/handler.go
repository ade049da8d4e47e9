package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/api"
	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// Handler handles HTTP requests for trip planning.
type Handler struct {
	plannerService Service
	logger         *slog.Logger
}

// NewHandler creates a new planner handler instance.
func NewHandler(plannerService Service, logger *slog.Logger) *Handler {
	instanceAddress := fmt.Sprintf("%p", logger)
	slog.Info("Creating planner Handler", slog.String("logger_address", instanceAddress), slog.Bool("logger_is_nil", logger == nil))
	if logger == nil {
		panic("PANIC: Attempting to create planner Handler with nil logger!")
	}

	return &Handler{
		plannerService: plannerService,
		logger:         logger,
	}
}

// PlanTrip godoc
// @Summary      Plan a Trip
// @Description  Resolves the endpoints, routes between them, and returns ranked recommendations along the way.
// @Tags         Trips
// @Accept       json
// @Produce      json
// @Param        trip body types.PlanTripRequest true "Trip to plan"
// @Success      200 {object} types.TripPlan "Planned Trip"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      404 {object} types.Response "Location or Route Not Found"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /trips/plan [post]
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "PlanTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanTrip"))

	var req types.PlanTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid request format: %s", err.Error()))
		return
	}

	plan, err := h.plannerService.PlanTrip(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Trip planning failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Trip planning failed")

		switch {
		case errors.Is(err, types.ErrValidation):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrLocationNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Could not resolve one of the trip locations")
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "No route found between the trip locations")
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to plan trip")
		}
		return
	}

	l.InfoContext(ctx, "Trip planned",
		slog.String("tripID", plan.ID.String()),
		slog.Int("recommendations", len(plan.Recommendations)))
	span.SetStatus(codes.Ok, "Trip planned")
	api.WriteJSONResponse(w, r, http.StatusOK, plan)
}
