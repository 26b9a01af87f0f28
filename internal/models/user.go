package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                     uuid.UUID `json:"user_id"`
	Email                  string    `json:"email"`
	PasswordHash           *string   `json:"-"` // nil for Google-only accounts
	ProfileImage           *string   `json:"user_profile_image"`
	ExerciseDurationHour   *int      `json:"exercise_duration_hour"`
	ExerciseDurationMinute *int      `json:"exercise_duration_minute"`

	// email verification
	VerificationToken       *string    `json:"-"`
	VerificationTokenExpiry *time.Time `json:"-"`
	EmailVerified           bool       `json:"email_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPassword is false for accounts created through Google sign-in.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleAuthRequest struct {
	Token string `json:"token" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	RecentPassword string `json:"recentPassword" binding:"required"`
	NewPassword    string `json:"newPassword" binding:"required"`
}

type DurationRequest struct {
	DurationHour   *int `json:"duration_hour" binding:"required,min=0"`
	DurationMinute *int `json:"duration_minute" binding:"required,min=0,max=59"`
}
