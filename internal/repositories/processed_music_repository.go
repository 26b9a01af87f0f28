package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"melodistic/internal/models"
)

type ProcessedMusicRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProcessedMusic, error)
	GetByUser(ctx context.Context, userID, processID uuid.UUID) (*models.ProcessedMusic, error)
	Delete(ctx context.Context, processID uuid.UUID) (*models.ProcessedMusic, error)
}

type processedMusicRepository struct {
	DB *sql.DB
}

func NewProcessedMusicRepository(db *sql.DB) ProcessedMusicRepository {
	return &processedMusicRepository{DB: db}
}

const processedColumns = `
		process_id, user_id, music_name, duration, mood, bpm, is_processing,
		created_at, updated_at`

func scanProcessed(row rowScanner) (*models.ProcessedMusic, error) {
	p := &models.ProcessedMusic{}
	if err := row.Scan(
		&p.ProcessID, &p.UserID, &p.MusicName, &p.Duration, &p.Mood, &p.BPM, &p.IsProcessing,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *processedMusicRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProcessedMusic, error) {
	q := `SELECT` + processedColumns + `
		FROM processed_music
		WHERE user_id = $1
		ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list processed music: %w", err)
	}
	defer rows.Close()

	res := make([]models.ProcessedMusic, 0)
	for rows.Next() {
		p, err := scanProcessed(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (r *processedMusicRepository) GetByUser(ctx context.Context, userID, processID uuid.UUID) (*models.ProcessedMusic, error) {
	q := `SELECT` + processedColumns + `
		FROM processed_music
		WHERE user_id = $1 AND process_id = $2`
	p, err := scanProcessed(r.DB.QueryRowContext(ctx, q, userID, processID))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// Delete drops the job together with its extracted music rows and returns the deleted job.
func (r *processedMusicRepository) Delete(ctx context.Context, processID uuid.UUID) (*models.ProcessedMusic, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT music_id FROM processed_music_extract WHERE processed_id = $1`, processID)
	if err != nil {
		return nil, fmt.Errorf("list extracts: %w", err)
	}
	var musicIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		musicIDs = append(musicIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM processed_music_extract WHERE processed_id = $1`, processID); err != nil {
		return nil, fmt.Errorf("delete extracts: %w", err)
	}
	if len(musicIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM music WHERE music_id = ANY($1::uuid[])`, pq.Array(musicIDs)); err != nil {
			return nil, fmt.Errorf("delete music: %w", err)
		}
	}

	q := `DELETE FROM processed_music
		WHERE process_id = $1
		RETURNING` + processedColumns
	p, err := scanProcessed(tx.QueryRowContext(ctx, q, processID))
	if err != nil {
		return nil, translate(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}
