package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T, h http.HandlerFunc) *ProcessorClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewProcessorClient(srv.URL, 2*time.Second, 3, zerolog.Nop())
}

func TestProcessorClient_ProcessYoutube(t *testing.T) {
	var got map[string]string
	c := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/processor/youtube", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.ProcessYoutube(context.Background(), "u1", "dQw4w9WgXcQ"))
	assert.Equal(t, map[string]string{"user_id": "u1", "video_id": "dQw4w9WgXcQ"}, got)
}

func TestProcessorClient_ProcessFile(t *testing.T) {
	var got map[string]string
	c := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/processor/file", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	require.NoError(t, c.ProcessFile(context.Background(), "u1", "song", "/app/uploads/song-1.wav"))
	assert.Equal(t, "/app/uploads/song-1.wav", got["file_path"])
	assert.Equal(t, "song", got["file_name"])
}

func TestProcessorClient_GenerateTrack(t *testing.T) {
	c := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Leg day", req.ProgramName)
		require.Len(t, req.Sections, 1)
		_, _ = w.Write([]byte(`{"track_id":"t-1"}`))
	})

	id, err := c.GenerateTrack(context.Background(), GenerateRequest{
		ProgramName: "Leg day",
		MuscleGroup: "LEGS",
		Sections:    []GenerateSection{{SectionName: "warm", SectionType: "WARMUP", Mood: "Chill", Duration: 60}},
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", id)
}

func TestProcessorClient_GenerateTrack_MissingID(t *testing.T) {
	c := newTestProcessor(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.GenerateTrack(context.Background(), GenerateRequest{})
	assert.Error(t, err)
}

func TestProcessorClient_UpstreamError(t *testing.T) {
	c := newTestProcessor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Video is too long"}`))
	})

	err := c.ProcessYoutube(context.Background(), "u1", "x")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Video is too long", apiErr.Message)
}

func TestProcessorClient_UpstreamPlainBody(t *testing.T) {
	c := newTestProcessor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway\n"))
	})

	err := c.ProcessFile(context.Background(), "u1", "a", "b")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestProcessorClient_RedirectCap(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path, http.StatusTemporaryRedirect)
	}))
	t.Cleanup(srv.Close)

	c := NewProcessorClient(srv.URL, 2*time.Second, 2, zerolog.Nop())
	err := c.ProcessYoutube(context.Background(), "u1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 2 redirects")
}
