package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ProcessorClient talks to the external music processing and generation API.
type ProcessorClient struct {
	BaseURL string
	HTTP    *http.Client
	Log     zerolog.Logger
}

// APIError is a non-2xx answer from the processor. Message is the upstream "message" field
// when present, otherwise the raw body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("processor returned %d: %s", e.StatusCode, e.Message)
}

func NewProcessorClient(baseURL string, timeout time.Duration, maxRedirects int, log zerolog.Logger) *ProcessorClient {
	return &ProcessorClient{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		Log: log,
	}
}

type GenerateSection struct {
	SectionName string   `json:"section_name"`
	SectionType string   `json:"section_type"`
	Mood        string   `json:"mood"`
	Duration    int      `json:"duration"`
	MusicIDs    []string `json:"music_ids"`
}

type GenerateRequest struct {
	ProgramName string            `json:"program_name"`
	MuscleGroup string            `json:"muscle_group"`
	Sections    []GenerateSection `json:"sections"`
}

type generateResponse struct {
	TrackID string `json:"track_id"`
}

// ProcessYoutube asks the processor to fetch and analyse a YouTube video.
func (c *ProcessorClient) ProcessYoutube(ctx context.Context, userID, videoID string) error {
	body := map[string]string{"user_id": userID, "video_id": videoID}
	return c.post(ctx, "/processor/youtube", body, nil)
}

// ProcessFile asks the processor to analyse an uploaded wav file.
func (c *ProcessorClient) ProcessFile(ctx context.Context, userID, fileName, filePath string) error {
	body := map[string]string{"user_id": userID, "file_name": fileName, "file_path": filePath}
	return c.post(ctx, "/processor/file", body, nil)
}

// GenerateTrack builds a workout track and returns its id.
func (c *ProcessorClient) GenerateTrack(ctx context.Context, req GenerateRequest) (string, error) {
	var out generateResponse
	if err := c.post(ctx, "/generate", req, &out); err != nil {
		return "", err
	}
	if out.TrackID == "" {
		return "", errors.New("processor response has no track_id")
	}
	return out.TrackID, nil
}

func (c *ProcessorClient) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("processor request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	c.Log.Debug().Str("path", path).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("processor call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: upstreamMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func upstreamMessage(raw []byte) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != nil {
		switch m := body.Message.(type) {
		case string:
			return m
		default:
			return fmt.Sprint(m)
		}
	}
	return string(bytes.TrimSpace(raw))
}
