package preferences

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/api"
	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// Handler handles HTTP requests for travel preferences.
type Handler struct {
	preferencesService Service
	logger             *slog.Logger
}

// NewHandler creates a new preferences handler instance.
func NewHandler(preferencesService Service, logger *slog.Logger) *Handler {
	instanceAddress := fmt.Sprintf("%p", logger)
	slog.Info("Creating preferences Handler", slog.String("logger_address", instanceAddress), slog.Bool("logger_is_nil", logger == nil))
	if logger == nil {
		panic("PANIC: Attempting to create preferences Handler with nil logger!")
	}

	return &Handler{
		preferencesService: preferencesService,
		logger:             logger,
	}
}

// GetPreferences godoc
// @Summary      Get Travel Preferences
// @Description  Retrieves the full set of weighted interest categories.
// @Tags         Preferences
// @Produce      json
// @Success      200 {array} types.UserPreference "Travel Preferences"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /preferences [get]
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PreferencesHandler").Start(r.Context(), "GetPreferences", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/preferences"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetPreferences"))

	prefs, err := h.preferencesService.GetAll(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to get preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get preferences")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve preferences")
		return
	}

	span.SetStatus(codes.Ok, "Preferences retrieved successfully")
	api.WriteJSONResponse(w, r, http.StatusOK, prefs)
}

// UpdatePreference godoc
// @Summary      Update Travel Preference
// @Description  Sets the interest level for one category. Last write wins.
// @Tags         Preferences
// @Accept       json
// @Produce      json
// @Param        category path string true "Interest category"
// @Param        preference body types.UpdatePreferenceRequest true "New interest level"
// @Success      200 {object} types.UserPreference "Updated Preference"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /preferences/{category} [put]
func (h *Handler) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PreferencesHandler").Start(r.Context(), "UpdatePreference", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/preferences/{category}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdatePreference"))

	category := chi.URLParam(r, "category")
	if category == "" {
		l.WarnContext(ctx, "Missing category in URL path")
		span.SetStatus(codes.Error, "Missing category")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Category is required in URL")
		return
	}
	l = l.With(slog.String("category", category))
	span.SetAttributes(attribute.String("preference.category", category))

	var req types.UpdatePreferenceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid request format: %s", err.Error()))
		return
	}

	pref, err := h.preferencesService.Update(ctx, types.UserPreference{
		Category:      category,
		InterestLevel: req.InterestLevel,
		Description:   req.Description,
	})
	if err != nil {
		l.ErrorContext(ctx, "Service failed to update preference", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service update failed")

		if errors.Is(err, types.ErrValidation) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		} else {
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update preference")
		}
		return
	}

	l.InfoContext(ctx, "Preference updated successfully")
	span.SetStatus(codes.Ok, "Preference updated")
	api.WriteJSONResponse(w, r, http.StatusOK, pref)
}
