package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"melodistic/internal/models"
	"melodistic/internal/repositories"
	"melodistic/internal/utils"
)

const (
	resetCodeDigits = 6
	resetCodeTTL    = 300 * time.Second
)

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) (*models.PasswordResetTicket, error)
	VerifyCode(ctx context.Context, email, code string) (bool, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	repo     repositories.PasswordResetRepository
	emails   EmailService
	auth     AuthService
	log      zerolog.Logger
}

func NewPasswordResetService(userRepo repositories.UserRepository, repo repositories.PasswordResetRepository, emails EmailService, auth AuthService, log zerolog.Logger) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		repo:     repo,
		emails:   emails,
		auth:     auth,
		log:      log,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) (*models.PasswordResetTicket, error) {
	email = normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	code, err := utils.NewNumericCode(resetCodeDigits)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, user.ID, code, resetCodeTTL); err != nil {
		return nil, fmt.Errorf("store reset code: %w", err)
	}
	if err := s.emails.SendPasswordResetCode(user.Email, code); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("[password-reset] code issued")
	return &models.PasswordResetTicket{Email: user.Email, Token: code}, nil
}

// VerifyCode reports whether code is the live reset code for email. Unknown emails and
// expired codes are simply false.
func (s *passwordResetService) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	stored, err := s.repo.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1, nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	ok, err := s.VerifyCode(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenInvalid
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}
