package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"melodistic/internal/models"
	"melodistic/internal/repositories"
	"melodistic/internal/storage"
	"melodistic/internal/utils"
)

const verificationTTL = time.Hour

type UserService interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
	AuthWithGoogle(ctx context.Context, accessToken string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, recentPassword, newPassword string) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateExerciseDuration(ctx context.Context, userID uuid.UUID, hour, minute int) error
	UploadProfileImage(ctx context.Context, userID uuid.UUID, file FileUpload) (string, error)
}

type UserServiceConfig struct {
	PublicURL        string // base of the verification link
	StoragePublicURL string
}

type userService struct {
	repo    repositories.UserRepository
	auth    AuthService
	emails  EmailService
	google  GoogleVerifier
	storage storage.Storage
	cfg     UserServiceConfig
	log     zerolog.Logger
	now     func() time.Time
}

func NewUserService(
	repo repositories.UserRepository,
	auth AuthService,
	emails EmailService,
	google GoogleVerifier,
	store storage.Storage,
	cfg UserServiceConfig,
	log zerolog.Logger,
) UserService {
	return &userService{
		repo:    repo,
		auth:    auth,
		emails:  emails,
		google:  google,
		storage: store,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Signup(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return "", ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	token, err := utils.NewRandomToken(32)
	if err != nil {
		return "", err
	}
	expiry := s.now().Add(verificationTTL)

	user := &models.User{
		Email:                   email,
		PasswordHash:            &hash,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return "", ErrUserExists
		}
		s.log.Error().Err(err).Str("email", email).Msg("[auth][signup] create user failed")
		return "", ErrCreateUser
	}

	link := s.cfg.PublicURL + "/api/auth/verify?token=" + token
	if err := s.emails.SendVerificationEmail(email, link); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("[auth][signup] verification email not sent")
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("[auth][signup] user created")
	return s.auth.GenerateToken(user.ID)
}

func (s *userService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("signin lookup: %w", err)
	}
	if !user.HasPassword() || !s.auth.ComparePassword(*user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.auth.GenerateToken(user.ID)
}

func (s *userService) AuthWithGoogle(ctx context.Context, accessToken string) (string, error) {
	email, err := s.google.EmailFromToken(ctx, accessToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("[auth][google] token lookup failed")
		return "", ErrGoogleAuth
	}

	user, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		user = &models.User{Email: email, EmailVerified: true}
		if err := s.repo.Create(ctx, user); err != nil {
			// a concurrent first login may have created the row already
			if !errors.Is(err, repositories.ErrDuplicate) {
				s.log.Error().Err(err).Msg("[auth][google] create user failed")
				return "", ErrGoogleAuth
			}
			if user, err = s.repo.GetByEmail(ctx, email); err != nil {
				return "", ErrGoogleAuth
			}
		}
	default:
		s.log.Error().Err(err).Msg("[auth][google] lookup failed")
		return "", ErrGoogleAuth
	}
	return s.auth.GenerateToken(user.ID)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTokenInvalid
		}
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}
	if user.VerificationTokenExpiry == nil || user.VerificationTokenExpiry.Before(s.now()) {
		return ErrTokenExpired
	}
	return s.repo.MarkEmailVerified(ctx, user.ID)
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, recentPassword, newPassword string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasPassword() || !s.auth.ComparePassword(*user.PasswordHash, recentPassword) {
		return ErrIncorrectPassword
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

func (s *userService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.getUser(ctx, userID)
}

func (s *userService) getUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateExerciseDuration(ctx context.Context, userID uuid.UUID, hour, minute int) error {
	if hour < 0 || minute < 0 || minute >= 60 {
		return ErrInvalidDuration
	}
	err := s.repo.UpdateExerciseDuration(ctx, userID, hour, minute)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// UploadProfileImage stores the image and returns its public URL.
func (s *userService) UploadProfileImage(ctx context.Context, userID uuid.UUID, file FileUpload) (string, error) {
	ext, err := imageExtension(file)
	if err != nil {
		return "", err
	}
	name := userID.String() + "." + ext
	if err := s.storage.Upload(ctx, "uploads/user/"+name, file.Body, file.Size, file.ContentType); err != nil {
		return "", fmt.Errorf("store profile image: %w", err)
	}

	url := s.cfg.StoragePublicURL + "/user-profile/" + name
	if err := s.repo.UpdateProfileImage(ctx, userID, url); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return url, nil
}
