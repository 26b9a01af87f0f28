package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"melodistic/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)

	// verification
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateExerciseDuration(ctx context.Context, id uuid.UUID, hour, minute int) error
	UpdateProfileImage(ctx context.Context, id uuid.UUID, url string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
		user_id, email, password, user_profile_image,
		exercise_duration_hour, exercise_duration_minute,
		email_verification_token, email_verification_token_expiry, email_verified,
		created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		password   sql.NullString
		image      sql.NullString
		hour       sql.NullInt64
		minute     sql.NullInt64
		token      sql.NullString
		expiry     sql.NullTime
		isVerified sql.NullBool
	)
	if err := row.Scan(
		&u.ID, &u.Email, &password, &image,
		&hour, &minute,
		&token, &expiry, &isVerified,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.PasswordHash = nullString(password)
	u.ProfileImage = nullString(image)
	u.ExerciseDurationHour = nullInt(hour)
	u.ExerciseDurationMinute = nullInt(minute)
	u.VerificationToken = nullString(token)
	if expiry.Valid {
		t := expiry.Time
		u.VerificationTokenExpiry = &t
	}
	u.EmailVerified = isVerified.Valid && isVerified.Bool
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	const q = `
		INSERT INTO users (
			user_id, email, password, user_profile_image,
			email_verification_token, email_verification_token_expiry, email_verified
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.ProfileImage,
		user.VerificationToken,
		user.VerificationTokenExpiry,
		user.EmailVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	q := `SELECT` + userColumns + `
		FROM users
		WHERE ` + where + ` = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, arg))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, "user_id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.getOne(ctx, "email_verification_token", token)
}

// MarkEmailVerified keeps the token so a repeated verification still finds the user.
func (r *userRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE users
		SET email_verified = TRUE,
			email_verification_token_expiry = NULL,
			updated_at = $2
		WHERE user_id = $1
	`
	return r.exec(ctx, q, id, time.Now().UTC())
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	const q = `UPDATE users SET password = $2, updated_at = $3 WHERE user_id = $1`
	return r.exec(ctx, q, id, hash, time.Now().UTC())
}

func (r *userRepository) UpdateExerciseDuration(ctx context.Context, id uuid.UUID, hour, minute int) error {
	const q = `
		UPDATE users
		SET exercise_duration_hour = $2, exercise_duration_minute = $3, updated_at = $4
		WHERE user_id = $1
	`
	return r.exec(ctx, q, id, hour, minute, time.Now().UTC())
}

func (r *userRepository) UpdateProfileImage(ctx context.Context, id uuid.UUID, url string) error {
	const q = `UPDATE users SET user_profile_image = $2, updated_at = $3 WHERE user_id = $1`
	return r.exec(ctx, q, id, url, time.Now().UTC())
}

func (r *userRepository) exec(ctx context.Context, q string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	return checkAffected(res)
}
