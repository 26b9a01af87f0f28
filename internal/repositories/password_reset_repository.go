package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PasswordResetRepository keeps one pending reset code per user in Redis.
type PasswordResetRepository interface {
	Save(ctx context.Context, userID uuid.UUID, code string, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (string, error)
}

type passwordResetRepository struct {
	rdb redis.Cmdable
}

func NewPasswordResetRepository(rdb redis.Cmdable) PasswordResetRepository {
	return &passwordResetRepository{rdb: rdb}
}

func resetKey(userID uuid.UUID) string {
	return "reset-password:" + userID.String()
}

// Save overwrites any earlier code for the user.
func (r *passwordResetRepository) Save(ctx context.Context, userID uuid.UUID, code string, ttl time.Duration) error {
	return r.rdb.Set(ctx, resetKey(userID), code, ttl).Err()
}

func (r *passwordResetRepository) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	code, err := r.rdb.Get(ctx, resetKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return code, err
}
