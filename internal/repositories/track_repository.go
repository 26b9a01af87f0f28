package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"melodistic/internal/models"
)

type TrackRepository interface {
	ListPublic(ctx context.Context) ([]models.Track, error)
	ListPublicWithFavorite(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error)
	GetPublicByID(ctx context.Context, trackID uuid.UUID) (*models.Track, error)
	GetGeneratedByUser(ctx context.Context, userID, trackID uuid.UUID) (*models.Track, error)
	Exists(ctx context.Context, trackID uuid.UUID) (bool, error)
	UpdateImage(ctx context.Context, trackID uuid.UUID, url string) (*models.Track, error)

	// generated tracks
	CreateGenerated(ctx context.Context, userID, trackID uuid.UUID) (*models.GeneratedTrack, error)
	ListGeneratedByUser(ctx context.Context, userID uuid.UUID) ([]models.GeneratedTrack, error)
	DeleteGenerated(ctx context.Context, userID, trackID uuid.UUID) error
}

type trackRepository struct {
	DB *sql.DB
}

func NewTrackRepository(db *sql.DB) TrackRepository {
	return &trackRepository{DB: db}
}

const trackColumns = `
		t.track_id, t.track_name, t.track_image_url, t.track_path,
		t.muscle_group, t.description, t.duration, t.is_public,
		t.created_at, t.updated_at`

func scanTrack(row rowScanner, extra ...any) (*models.Track, error) {
	t := &models.Track{}
	var (
		image       sql.NullString
		path        sql.NullString
		muscleGroup sql.NullString
		description sql.NullString
		duration    sql.NullInt64
	)
	dest := []any{
		&t.ID, &t.Name, &image, &path,
		&muscleGroup, &description, &duration, &t.IsPublic,
		&t.CreatedAt, &t.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	t.ImageURL = nullString(image)
	t.Path = nullString(path)
	t.MuscleGroup = nullString(muscleGroup)
	t.Description = nullString(description)
	t.Duration = nullInt(duration)
	return t, nil
}

func (r *trackRepository) ListPublic(ctx context.Context) ([]models.Track, error) {
	q := `SELECT` + trackColumns + `
		FROM track t
		WHERE t.is_public = TRUE
		ORDER BY t.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	res := make([]models.Track, 0)
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *t)
	}
	return res, rows.Err()
}

func (r *trackRepository) ListPublicWithFavorite(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	q := `SELECT` + trackColumns + `, f.user_favorite_id IS NOT NULL
		FROM track t
		LEFT JOIN user_favorite f ON f.track_id = t.track_id AND f.user_id = $1
		WHERE t.is_public = TRUE
		ORDER BY t.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	res := make([]models.FavoriteTrack, 0)
	for rows.Next() {
		var fav bool
		t, err := scanTrack(rows, &fav)
		if err != nil {
			return nil, err
		}
		res = append(res, models.FavoriteTrack{Track: *t, IsFavorite: fav})
	}
	return res, rows.Err()
}

func (r *trackRepository) GetPublicByID(ctx context.Context, trackID uuid.UUID) (*models.Track, error) {
	q := `SELECT` + trackColumns + `
		FROM track t
		WHERE t.track_id = $1 AND t.is_public = TRUE`
	t, err := scanTrack(r.DB.QueryRowContext(ctx, q, trackID))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *trackRepository) GetGeneratedByUser(ctx context.Context, userID, trackID uuid.UUID) (*models.Track, error) {
	q := `SELECT` + trackColumns + `
		FROM track t
		JOIN generated_track g ON g.track_id = t.track_id
		WHERE g.user_id = $1 AND t.track_id = $2
		LIMIT 1`
	t, err := scanTrack(r.DB.QueryRowContext(ctx, q, userID, trackID))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *trackRepository) Exists(ctx context.Context, trackID uuid.UUID) (bool, error) {
	var ok bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM track WHERE track_id = $1)`, trackID).Scan(&ok)
	return ok, err
}

func (r *trackRepository) UpdateImage(ctx context.Context, trackID uuid.UUID, url string) (*models.Track, error) {
	q := `UPDATE track t
		SET track_image_url = $2, updated_at = $3
		WHERE t.track_id = $1
		RETURNING` + trackColumns
	t, err := scanTrack(r.DB.QueryRowContext(ctx, q, trackID, url, time.Now().UTC()))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *trackRepository) CreateGenerated(ctx context.Context, userID, trackID uuid.UUID) (*models.GeneratedTrack, error) {
	const q = `
		INSERT INTO generated_track (generated_track_id, user_id, track_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	g := &models.GeneratedTrack{ID: uuid.New(), UserID: userID, TrackID: trackID}
	if err := r.DB.QueryRowContext(ctx, q, g.ID, userID, trackID).Scan(&g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create generated track: %w", translate(err))
	}
	return g, nil
}

func (r *trackRepository) ListGeneratedByUser(ctx context.Context, userID uuid.UUID) ([]models.GeneratedTrack, error) {
	q := `SELECT` + trackColumns + `,
		g.generated_track_id, g.user_id, g.created_at, g.updated_at
		FROM generated_track g
		JOIN track t ON t.track_id = g.track_id
		WHERE g.user_id = $1
		ORDER BY g.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	defer rows.Close()

	res := make([]models.GeneratedTrack, 0)
	for rows.Next() {
		var g models.GeneratedTrack
		t, err := scanTrack(rows, &g.ID, &g.UserID, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		g.TrackID = t.ID
		g.Track = t
		res = append(res, g)
	}
	return res, rows.Err()
}

// DeleteGenerated removes the ownership link, the user's favorite and the track itself together.
func (r *trackRepository) DeleteGenerated(ctx context.Context, userID, trackID uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM generated_track WHERE user_id = $1 AND track_id = $2`, userID, trackID)
	if err != nil {
		return fmt.Errorf("delete generated track: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_favorite WHERE user_id = $1 AND track_id = $2`, userID, trackID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM track WHERE track_id = $1`, trackID); err != nil {
		return fmt.Errorf("delete track: %w", err)
	}
	return tx.Commit()
}
