package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"melodistic/internal/models"
)

type FavoriteRepository interface {
	Find(ctx context.Context, userID, trackID uuid.UUID) (*models.UserFavorite, error)
	Create(ctx context.Context, userID, trackID uuid.UUID) (*models.UserFavorite, error)
	Delete(ctx context.Context, favoriteID uuid.UUID) error
	ListTracks(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error)
}

type favoriteRepository struct {
	DB *sql.DB
}

func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{DB: db}
}

func (r *favoriteRepository) Find(ctx context.Context, userID, trackID uuid.UUID) (*models.UserFavorite, error) {
	const q = `
		SELECT user_favorite_id, user_id, track_id, created_at, updated_at
		FROM user_favorite
		WHERE user_id = $1 AND track_id = $2
	`
	f := &models.UserFavorite{}
	err := r.DB.QueryRowContext(ctx, q, userID, trackID).Scan(&f.ID, &f.UserID, &f.TrackID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return f, nil
}

func (r *favoriteRepository) Create(ctx context.Context, userID, trackID uuid.UUID) (*models.UserFavorite, error) {
	const q = `
		INSERT INTO user_favorite (user_favorite_id, user_id, track_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	f := &models.UserFavorite{ID: uuid.New(), UserID: userID, TrackID: trackID}
	if err := r.DB.QueryRowContext(ctx, q, f.ID, userID, trackID).Scan(&f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create favorite: %w", translate(err))
	}
	return f, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, favoriteID uuid.UUID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM user_favorite WHERE user_favorite_id = $1`, favoriteID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return checkAffected(res)
}

// ListTracks returns the user's favorite tracks, most recently favorited first.
func (r *favoriteRepository) ListTracks(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	q := `SELECT` + trackColumns + `
		FROM user_favorite f
		JOIN track t ON t.track_id = f.track_id
		WHERE f.user_id = $1
		ORDER BY f.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	res := make([]models.FavoriteTrack, 0)
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, models.FavoriteTrack{Track: *t, IsFavorite: true})
	}
	return res, rows.Err()
}
