package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRepository_Find(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)

	now := time.Now()
	favID, userID, trackID := uuid.New(), uuid.New(), uuid.New()
	mock.ExpectQuery(`FROM user_favorite WHERE user_id = \$1 AND track_id = \$2`).
		WithArgs(userID, trackID).
		WillReturnRows(sqlmock.NewRows([]string{"user_favorite_id", "user_id", "track_id", "created_at", "updated_at"}).
			AddRow(favID.String(), userID.String(), trackID.String(), now, now))

	f, err := repo.Find(context.Background(), userID, trackID)
	require.NoError(t, err)
	assert.Equal(t, favID, f.ID)
}

func TestFavoriteRepository_Find_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)

	mock.ExpectQuery(`FROM user_favorite`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteRepository_CreateAndDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)

	now := time.Now()
	userID, trackID := uuid.New(), uuid.New()
	mock.ExpectQuery(`INSERT INTO user_favorite`).
		WithArgs(sqlmock.AnyArg(), userID, trackID).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	f, err := repo.Create(context.Background(), userID, trackID)
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM user_favorite WHERE user_favorite_id = \$1`).
		WithArgs(f.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), f.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_ListTracks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)

	now := time.Now()
	userID, trackID := uuid.New(), uuid.New()
	mock.ExpectQuery(`FROM user_favorite f JOIN track t`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(trackCols).AddRow(trackRow(trackID, "fav", now)...))

	tracks, err := repo.ListTracks(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.True(t, tracks[0].IsFavorite)
	assert.Equal(t, trackID, tracks[0].ID)
}
