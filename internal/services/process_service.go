package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"melodistic/internal/models"
	"melodistic/internal/repositories"
	"melodistic/internal/storage"
)

type ProcessService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.ProcessedMusic, error)
	ProcessYoutube(ctx context.Context, userID uuid.UUID, rawURL string) error
	ProcessFile(ctx context.Context, userID uuid.UUID, file FileUpload) error
	Delete(ctx context.Context, userID, processID uuid.UUID) (*models.ProcessedMusic, error)
}

type processService struct {
	repo      repositories.ProcessedMusicRepository
	processor Processor
	storage   storage.Storage
	log       zerolog.Logger
	now       func() time.Time
}

func NewProcessService(repo repositories.ProcessedMusicRepository, processor Processor, store storage.Storage, log zerolog.Logger) ProcessService {
	return &processService{
		repo:      repo,
		processor: processor,
		storage:   store,
		log:       log,
		now:       time.Now,
	}
}

func (s *processService) List(ctx context.Context, userID uuid.UUID) ([]models.ProcessedMusic, error) {
	return s.repo.ListByUser(ctx, userID)
}

// youtubeVideoID reads the id from a watch?v= URL or a youtu.be/<id> short link.
func youtubeVideoID(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidYoutubeURL
	}
	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}
	if strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.") == "youtu.be" {
		if id := strings.Trim(u.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return id, nil
		}
	}
	return "", ErrInvalidYoutubeURL
}

func (s *processService) ProcessYoutube(ctx context.Context, userID uuid.UUID, rawURL string) error {
	videoID, err := youtubeVideoID(rawURL)
	if err != nil {
		return err
	}
	if err := s.processor.ProcessYoutube(ctx, userID.String(), videoID); err != nil {
		return upstreamError(err)
	}
	s.log.Info().Str("user_id", userID.String()).Str("video_id", videoID).Msg("[process][youtube] started")
	return nil
}

func (s *processService) ProcessFile(ctx context.Context, userID uuid.UUID, file FileUpload) error {
	if err := checkMusic(file); err != nil {
		return err
	}

	base := path.Base(strings.ReplaceAll(file.Filename, "\\", "/"))
	name := strings.TrimSuffix(base, path.Ext(base))
	if name == "" || name == "." || name == "/" {
		name = "music"
	}
	key := fmt.Sprintf("uploads/%s-%d.wav", name, s.now().UnixMilli())
	if err := s.storage.Upload(ctx, key, file.Body, file.Size, file.ContentType); err != nil {
		return fmt.Errorf("store music: %w", err)
	}

	if err := s.processor.ProcessFile(ctx, userID.String(), name, s.storage.Locate(key)); err != nil {
		return upstreamError(err)
	}
	s.log.Info().Str("user_id", userID.String()).Str("file", key).Msg("[process][file] started")
	return nil
}

func (s *processService) Delete(ctx context.Context, userID, processID uuid.UUID) (*models.ProcessedMusic, error) {
	if _, err := s.repo.GetByUser(ctx, userID, processID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}
	deleted, err := s.repo.Delete(ctx, processID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}

	for _, prefix := range []string{"song/processed/", "features/processed/"} {
		if err := s.storage.RemoveAll(ctx, prefix+processID.String()); err != nil {
			s.log.Warn().Err(err).Str("process_id", processID.String()).Msg("[process][delete] stored data not removed")
		}
	}
	return deleted, nil
}
