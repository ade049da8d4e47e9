package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// PGXPool is the subset of *pgxpool.Pool the repository needs.
type PGXPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	// List returns every stored preference, ordered by category.
	List(ctx context.Context) ([]types.UserPreference, error)

	// Get returns the preference for a single category.
	// Returns ErrNotFound when the category has never been set.
	Get(ctx context.Context, category string) (*types.UserPreference, error)

	// Upsert stores a preference, replacing any previous value for the
	// same category.
	Upsert(ctx context.Context, pref types.UserPreference) error
}

type PostgresRepository struct {
	logger *slog.Logger
	pgpool PGXPool
}

func NewPostgresRepository(pgpool PGXPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresRepository) List(ctx context.Context) ([]types.UserPreference, error) {
	ctx, span := otel.Tracer("PreferencesRepo").Start(ctx, "ListPreferences", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_preferences"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "ListPreferences"))
	l.DebugContext(ctx, "Fetching stored preferences")

	query := `
		SELECT category, interest_level, description
		FROM user_preferences
		ORDER BY category
	`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching preferences: %w", err)
	}
	defer rows.Close()

	var prefs []types.UserPreference
	for rows.Next() {
		var pref types.UserPreference
		if err := rows.Scan(&pref.Category, &pref.InterestLevel, &pref.Description); err != nil {
			l.ErrorContext(ctx, "Failed to scan preference row", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Row scan failed")
			return nil, fmt.Errorf("database error scanning preference: %w", err)
		}
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rows iteration failed")
		return nil, fmt.Errorf("database error reading preferences: %w", err)
	}

	span.SetAttributes(attribute.Int("preferences.count", len(prefs)))
	span.SetStatus(codes.Ok, "Preferences fetched")
	return prefs, nil
}

func (r *PostgresRepository) Get(ctx context.Context, category string) (*types.UserPreference, error) {
	ctx, span := otel.Tracer("PreferencesRepo").Start(ctx, "GetPreference", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_preferences"),
		attribute.String("preference.category", category),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetPreference"), slog.String("category", category))
	l.DebugContext(ctx, "Fetching preference")

	query := `
		SELECT category, interest_level, description
		FROM user_preferences
		WHERE category = $1
	`

	var pref types.UserPreference
	err := r.pgpool.QueryRow(ctx, query, category).Scan(&pref.Category, &pref.InterestLevel, &pref.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "Preference not found")
			span.SetStatus(codes.Error, "Preference not found")
			return nil, fmt.Errorf("preference for category %q not found: %w", category, types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to query preference", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching preference: %w", err)
	}

	span.SetStatus(codes.Ok, "Preference fetched")
	return &pref, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, pref types.UserPreference) error {
	ctx, span := otel.Tracer("PreferencesRepo").Start(ctx, "UpsertPreference", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "user_preferences"),
		attribute.String("preference.category", pref.Category),
		attribute.Int("preference.interest_level", pref.InterestLevel),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpsertPreference"), slog.String("category", pref.Category))
	l.DebugContext(ctx, "Upserting preference", slog.Int("interestLevel", pref.InterestLevel))

	query := `
		INSERT INTO user_preferences (category, interest_level, description, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category) DO UPDATE
		SET interest_level = EXCLUDED.interest_level,
		    description = EXCLUDED.description,
		    updated_at = EXCLUDED.updated_at
	`

	tag, err := r.pgpool.Exec(ctx, query, pref.Category, pref.InterestLevel, pref.Description, time.Now())
	if err != nil {
		l.ErrorContext(ctx, "Failed to upsert preference", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPSERT failed")
		return fmt.Errorf("database error upserting preference: %w", err)
	}

	if tag.RowsAffected() == 0 {
		l.WarnContext(ctx, "Upsert affected no rows")
		span.SetStatus(codes.Error, "Upsert affected no rows")
		return fmt.Errorf("preference upsert for category %q affected no rows", pref.Category)
	}

	l.InfoContext(ctx, "Preference upserted successfully")
	span.SetStatus(codes.Ok, "Preference upserted")
	return nil
}
