package models

import (
	"time"

	"github.com/google/uuid"
)

// ProcessedMusic is a processing job record. Rows are written by the external processor;
// this service only lists and deletes them.
type ProcessedMusic struct {
	ProcessID    uuid.UUID `json:"process_id"`
	UserID       uuid.UUID `json:"user_id"`
	MusicName    string    `json:"music_name"`
	Duration     int       `json:"duration"`
	Mood         string    `json:"mood"`
	BPM          float64   `json:"bpm"`
	IsProcessing bool      `json:"is_processing"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type YoutubeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type ProcessStartedResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
