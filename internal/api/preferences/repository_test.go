package preferences

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-recommendations/internal/types"
)

func newMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostgresRepository(mockPool, slog.Default()), mockPool
}

func TestPostgresRepository_List(t *testing.T) {
	repo, mockPool := newMockRepo(t)
	ctx := context.Background()

	mockPool.ExpectQuery("SELECT category, interest_level, description").
		WillReturnRows(pgxmock.NewRows([]string{"category", "interest_level", "description"}).
			AddRow("museum", 4, "loves modern art").
			AddRow("park", 2, ""))

	prefs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, types.UserPreference{Category: "museum", InterestLevel: 4, Description: "loves modern art"}, prefs[0])
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresRepository_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		mockPool.ExpectQuery("SELECT category, interest_level, description").
			WithArgs("museum").
			WillReturnRows(pgxmock.NewRows([]string{"category", "interest_level", "description"}).
				AddRow("museum", 4, ""))

		pref, err := repo.Get(context.Background(), "museum")
		require.NoError(t, err)
		assert.Equal(t, 4, pref.InterestLevel)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("not found maps to ErrNotFound", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		mockPool.ExpectQuery("SELECT category, interest_level, description").
			WithArgs("lodging").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Get(context.Background(), "lodging")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestPostgresRepository_Upsert(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	mockPool.ExpectExec("INSERT INTO user_preferences").
		WithArgs("museum", 4, "loves modern art", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(context.Background(), types.UserPreference{
		Category:      "museum",
		InterestLevel: 4,
		Description:   "loves modern art",
	})
	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
