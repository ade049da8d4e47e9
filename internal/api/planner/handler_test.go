package planner

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

// MockPlannerService is a mock implementation of Service
type MockPlannerService struct {
	mock.Mock
}

func (m *MockPlannerService) PlanTrip(ctx context.Context, req types.PlanTripRequest) (*types.TripPlan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripPlan), args.Error(1)
}

func postPlan(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.PlanTrip(rec, req)
	return rec
}

func TestPlanTripHandler(t *testing.T) {
	logger := slog.Default()

	t.Run("returns the plan on success", func(t *testing.T) {
		mockService := new(MockPlannerService)
		handler := NewHandler(mockService, logger)

		planID := uuid.New()
		mockService.On("PlanTrip", mock.Anything, types.PlanTripRequest{Start: "Lisbon", End: "Porto"}).
			Return(&types.TripPlan{ID: planID, Narrative: "Up the coast."}, nil)

		rec := postPlan(t, handler, `{"start": "Lisbon", "end": "Porto"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var plan types.TripPlan
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
		assert.Equal(t, planID, plan.ID)
		assert.Equal(t, "Up the coast.", plan.Narrative)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		mockService := new(MockPlannerService)
		handler := NewHandler(mockService, logger)

		rec := postPlan(t, handler, `{"start": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "PlanTrip")
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		mockService := new(MockPlannerService)
		handler := NewHandler(mockService, logger)

		mockService.On("PlanTrip", mock.Anything, mock.Anything).
			Return(nil, types.ErrValidation)

		rec := postPlan(t, handler, `{"start": "", "end": "Porto"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unresolvable location maps to 404", func(t *testing.T) {
		mockService := new(MockPlannerService)
		handler := NewHandler(mockService, logger)

		mockService.On("PlanTrip", mock.Anything, mock.Anything).
			Return(nil, types.ErrLocationNotFound)

		rec := postPlan(t, handler, `{"start": "gibberish", "end": "Porto"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unexpected failures map to 500", func(t *testing.T) {
		mockService := new(MockPlannerService)
		handler := NewHandler(mockService, logger)

		mockService.On("PlanTrip", mock.Anything, mock.Anything).
			Return(nil, errors.New("provider exploded"))

		rec := postPlan(t, handler, `{"start": "Lisbon", "end": "Porto"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
