package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"melodistic/internal/models"
	"melodistic/internal/repositories"
	"melodistic/internal/storage"
	"melodistic/internal/utils"
)

type TrackService interface {
	ListTracks(ctx context.Context) ([]models.Track, error)
	ListTracksForUser(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error)
	GetTrack(ctx context.Context, userID, trackID uuid.UUID) (*models.Track, error)
	CreateTrack(ctx context.Context, userID uuid.UUID, req models.CreateTrackRequest) (uuid.UUID, error)
	UpdateTrackImage(ctx context.Context, userID, trackID uuid.UUID, file FileUpload) (*models.Track, error)
	DeleteTrack(ctx context.Context, userID, trackID uuid.UUID) error

	Library(ctx context.Context, userID uuid.UUID) ([]models.GeneratedTrack, error)
	Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error)
	// ToggleFavorite reports true when the track was added, false when it was removed.
	ToggleFavorite(ctx context.Context, userID, trackID uuid.UUID) (bool, error)
}

type trackService struct {
	tracks           repositories.TrackRepository
	favorites        repositories.FavoriteRepository
	processor        Processor
	storage          storage.Storage
	storagePublicURL string
	log              zerolog.Logger
}

func NewTrackService(
	tracks repositories.TrackRepository,
	favorites repositories.FavoriteRepository,
	processor Processor,
	store storage.Storage,
	storagePublicURL string,
	log zerolog.Logger,
) TrackService {
	return &trackService{
		tracks:           tracks,
		favorites:        favorites,
		processor:        processor,
		storage:          store,
		storagePublicURL: storagePublicURL,
		log:              log,
	}
}

func (s *trackService) ListTracks(ctx context.Context) ([]models.Track, error) {
	return s.tracks.ListPublic(ctx)
}

func (s *trackService) ListTracksForUser(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	return s.tracks.ListPublicWithFavorite(ctx, userID)
}

// GetTrack returns a public track, or one the user generated.
func (s *trackService) GetTrack(ctx context.Context, userID, trackID uuid.UUID) (*models.Track, error) {
	t, err := s.tracks.GetPublicByID(ctx, trackID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if userID == uuid.Nil {
		return nil, ErrTrackNotFound
	}
	t, err = s.tracks.GetGeneratedByUser(ctx, userID, trackID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTrackNotFound
	}
	return t, err
}

func (s *trackService) CreateTrack(ctx context.Context, userID uuid.UUID, req models.CreateTrackRequest) (uuid.UUID, error) {
	gen := utils.GenerateRequest{
		ProgramName: req.ProgramName,
		MuscleGroup: string(req.MuscleGroup),
		Sections:    make([]utils.GenerateSection, 0, len(req.Sections)),
	}
	for _, sec := range req.Sections {
		ids := sec.MusicIDs
		if ids == nil {
			ids = []string{}
		}
		gen.Sections = append(gen.Sections, utils.GenerateSection{
			SectionName: sec.Name,
			SectionType: string(sec.Type),
			Mood:        string(sec.Mood),
			Duration:    sec.Duration,
			MusicIDs:    ids,
		})
	}

	raw, err := s.processor.GenerateTrack(ctx, gen)
	if err != nil {
		return uuid.Nil, upstreamError(err)
	}
	trackID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad track id %q", ErrUpstream, raw)
	}
	if _, err := s.tracks.CreateGenerated(ctx, userID, trackID); err != nil {
		return uuid.Nil, err
	}
	s.log.Info().Str("user_id", userID.String()).Str("track_id", trackID.String()).Msg("[track][create] generated")
	return trackID, nil
}

func (s *trackService) UpdateTrackImage(ctx context.Context, userID, trackID uuid.UUID, file FileUpload) (*models.Track, error) {
	if _, err := s.tracks.GetGeneratedByUser(ctx, userID, trackID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, err
	}
	ext, err := imageExtension(file)
	if err != nil {
		return nil, err
	}
	name := trackID.String() + "." + ext
	if err := s.storage.Upload(ctx, "uploads/track/"+name, file.Body, file.Size, file.ContentType); err != nil {
		return nil, fmt.Errorf("store track image: %w", err)
	}
	t, err := s.tracks.UpdateImage(ctx, trackID, s.storagePublicURL+"/track/"+name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTrackNotFound
	}
	return t, err
}

func (s *trackService) DeleteTrack(ctx context.Context, userID, trackID uuid.UUID) error {
	exists, err := s.tracks.Exists(ctx, trackID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTrackNotFound
	}
	if err := s.tracks.DeleteGenerated(ctx, userID, trackID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTrackNotFound
		}
		return err
	}
	if err := s.storage.Delete(ctx, "combine-result/"+trackID.String()+".wav"); err != nil {
		s.log.Warn().Err(err).Str("track_id", trackID.String()).Msg("[track][delete] audio not removed")
	}
	return nil
}

func (s *trackService) Library(ctx context.Context, userID uuid.UUID) ([]models.GeneratedTrack, error) {
	return s.tracks.ListGeneratedByUser(ctx, userID)
}

func (s *trackService) Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	return s.favorites.ListTracks(ctx, userID)
}

func (s *trackService) ToggleFavorite(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	exists, err := s.tracks.Exists(ctx, trackID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrTrackNotFound
	}

	fav, err := s.favorites.Find(ctx, userID, trackID)
	switch {
	case err == nil:
		if err := s.favorites.Delete(ctx, fav.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return false, err
		}
		return false, nil
	case errors.Is(err, repositories.ErrNotFound):
		if _, err := s.favorites.Create(ctx, userID, trackID); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}
