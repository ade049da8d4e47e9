package preferences

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service manages the traveller's weighted interest categories.
type Service interface {
	// GetAll returns the full preference set. Categories the user never
	// touched come back at the minimum interest level so callers always
	// see the complete category vocabulary.
	GetAll(ctx context.Context) ([]types.UserPreference, error)

	// Update stores one preference, replacing any earlier value for the
	// same category.
	Update(ctx context.Context, pref types.UserPreference) (*types.UserPreference, error)

	// ActiveSearchCategories expands the stored preferences into provider
	// search categories for route fan-out.
	ActiveSearchCategories(ctx context.Context) ([]string, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]types.UserPreference, error) {
	ctx, span := otel.Tracer("PreferencesService").Start(ctx, "GetAll")
	defer span.End()

	l := s.logger.With(slog.String("method", "GetAll"))
	l.DebugContext(ctx, "Fetching preferences")

	stored, err := s.repo.List(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository list failed")
		return nil, err
	}

	byCategory := make(map[string]types.UserPreference, len(stored))
	for _, pref := range stored {
		byCategory[pref.Category] = pref
	}
	for _, category := range KnownCategories {
		if _, ok := byCategory[category]; !ok {
			byCategory[category] = types.UserPreference{
				Category:      category,
				InterestLevel: types.MinInterestLevel,
			}
		}
	}

	prefs := make([]types.UserPreference, 0, len(byCategory))
	for _, pref := range byCategory {
		prefs = append(prefs, pref)
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].Category < prefs[j].Category })

	span.SetAttributes(attribute.Int("preferences.count", len(prefs)))
	span.SetStatus(codes.Ok, "Preferences fetched")
	return prefs, nil
}

func (s *ServiceImpl) Update(ctx context.Context, pref types.UserPreference) (*types.UserPreference, error) {
	ctx, span := otel.Tracer("PreferencesService").Start(ctx, "Update", trace.WithAttributes(
		attribute.String("preference.category", pref.Category),
		attribute.Int("preference.interest_level", pref.InterestLevel),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Update"), slog.String("category", pref.Category))

	if pref.Category == "" {
		span.SetStatus(codes.Error, "Missing category")
		return nil, fmt.Errorf("category is required: %w", types.ErrValidation)
	}
	if !knownCategory(pref.Category) {
		span.SetStatus(codes.Error, "Unknown category")
		return nil, fmt.Errorf("unknown category %q: %w", pref.Category, types.ErrValidation)
	}
	if pref.InterestLevel < types.MinInterestLevel || pref.InterestLevel > types.MaxInterestLevel {
		span.SetStatus(codes.Error, "Interest level out of range")
		return nil, fmt.Errorf("interest level must be between %d and %d: %w",
			types.MinInterestLevel, types.MaxInterestLevel, types.ErrValidation)
	}

	if err := s.repo.Upsert(ctx, pref); err != nil {
		l.ErrorContext(ctx, "Failed to upsert preference", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository upsert failed")
		return nil, err
	}

	l.InfoContext(ctx, "Preference updated", slog.Int("interestLevel", pref.InterestLevel))
	span.SetStatus(codes.Ok, "Preference updated")
	return &pref, nil
}

func (s *ServiceImpl) ActiveSearchCategories(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("PreferencesService").Start(ctx, "ActiveSearchCategories")
	defer span.End()

	prefs, err := s.GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load preferences")
		return nil, err
	}

	categories := SearchCategories(prefs)
	span.SetAttributes(attribute.StringSlice("search.categories", categories))
	span.SetStatus(codes.Ok, "Search categories resolved")
	return categories, nil
}
