package models

import (
	"time"

	"github.com/google/uuid"
)

type MuscleGroup string

const (
	MuscleGroupAbs      MuscleGroup = "ABS"
	MuscleGroupArm      MuscleGroup = "ARM"
	MuscleGroupCore     MuscleGroup = "CORE"
	MuscleGroupFullBody MuscleGroup = "FULL_BODY"
	MuscleGroupLegs     MuscleGroup = "LEGS"
)

type SectionType string

const (
	SectionWarmup   SectionType = "WARMUP"
	SectionExercise SectionType = "EXERCISE"
	SectionCooldown SectionType = "COOLDOWN"
)

type Mood string

const (
	MoodChill   Mood = "Chill"
	MoodParty   Mood = "Party"
	MoodRomance Mood = "Romance"
	MoodFocus   Mood = "Focus"
)

type Track struct {
	ID          uuid.UUID `json:"track_id"`
	Name        string    `json:"track_name"`
	ImageURL    *string   `json:"track_image_url"`
	Path        *string   `json:"track_path"`
	MuscleGroup *string   `json:"muscle_group"`
	Description *string   `json:"description"`
	Duration    *int      `json:"duration"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FavoriteTrack is a track as listed to a signed-in user.
type FavoriteTrack struct {
	Track
	IsFavorite bool `json:"is_favorite"`
}

type GeneratedTrack struct {
	ID        uuid.UUID `json:"generated_track_id"`
	UserID    uuid.UUID `json:"user_id"`
	TrackID   uuid.UUID `json:"track_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Track     *Track    `json:"Track,omitempty"`
}

type UserFavorite struct {
	ID        uuid.UUID `json:"user_favorite_id"`
	UserID    uuid.UUID `json:"user_id"`
	TrackID   uuid.UUID `json:"track_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Section struct {
	Name     string      `json:"section_name" binding:"required"`
	Type     SectionType `json:"section_type" binding:"required,oneof=WARMUP EXERCISE COOLDOWN"`
	Mood     Mood        `json:"mood" binding:"required,oneof=Chill Party Romance Focus"`
	Duration int         `json:"duration" binding:"required,gt=0"`
	MusicIDs []string    `json:"music_ids"`
}

type CreateTrackRequest struct {
	ProgramName string      `json:"program_name" binding:"required"`
	MuscleGroup MuscleGroup `json:"muscle_group" binding:"required,oneof=ABS ARM CORE FULL_BODY LEGS"`
	Sections    []Section   `json:"sections" binding:"required,min=1,dive"`
}

type FavoriteRequest struct {
	TrackID string `json:"track_id" binding:"required,uuid"`
}

// StatusResponse mirrors the {status, message} bodies the mobile client expects.
type StatusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	TrackID string `json:"track_id,omitempty"`
}
