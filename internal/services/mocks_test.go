package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"melodistic/internal/models"
	"melodistic/internal/utils"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockUserRepository) UpdateExerciseDuration(ctx context.Context, id uuid.UUID, hour, minute int) error {
	return m.Called(ctx, id, hour, minute).Error(0)
}

func (m *MockUserRepository) UpdateProfileImage(ctx context.Context, id uuid.UUID, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

type MockTrackRepository struct {
	mock.Mock
}

func (m *MockTrackRepository) ListPublic(ctx context.Context) ([]models.Track, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Track), args.Error(1)
}

func (m *MockTrackRepository) ListPublicWithFavorite(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FavoriteTrack), args.Error(1)
}

func (m *MockTrackRepository) GetPublicByID(ctx context.Context, trackID uuid.UUID) (*models.Track, error) {
	args := m.Called(ctx, trackID)
	t, _ := args.Get(0).(*models.Track)
	return t, args.Error(1)
}

func (m *MockTrackRepository) GetGeneratedByUser(ctx context.Context, userID, trackID uuid.UUID) (*models.Track, error) {
	args := m.Called(ctx, userID, trackID)
	t, _ := args.Get(0).(*models.Track)
	return t, args.Error(1)
}

func (m *MockTrackRepository) Exists(ctx context.Context, trackID uuid.UUID) (bool, error) {
	args := m.Called(ctx, trackID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrackRepository) UpdateImage(ctx context.Context, trackID uuid.UUID, url string) (*models.Track, error) {
	args := m.Called(ctx, trackID, url)
	t, _ := args.Get(0).(*models.Track)
	return t, args.Error(1)
}

func (m *MockTrackRepository) CreateGenerated(ctx context.Context, userID, trackID uuid.UUID) (*models.GeneratedTrack, error) {
	args := m.Called(ctx, userID, trackID)
	g, _ := args.Get(0).(*models.GeneratedTrack)
	return g, args.Error(1)
}

func (m *MockTrackRepository) ListGeneratedByUser(ctx context.Context, userID uuid.UUID) ([]models.GeneratedTrack, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.GeneratedTrack), args.Error(1)
}

func (m *MockTrackRepository) DeleteGenerated(ctx context.Context, userID, trackID uuid.UUID) error {
	return m.Called(ctx, userID, trackID).Error(0)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Find(ctx context.Context, userID, trackID uuid.UUID) (*models.UserFavorite, error) {
	args := m.Called(ctx, userID, trackID)
	f, _ := args.Get(0).(*models.UserFavorite)
	return f, args.Error(1)
}

func (m *MockFavoriteRepository) Create(ctx context.Context, userID, trackID uuid.UUID) (*models.UserFavorite, error) {
	args := m.Called(ctx, userID, trackID)
	f, _ := args.Get(0).(*models.UserFavorite)
	return f, args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, favoriteID uuid.UUID) error {
	return m.Called(ctx, favoriteID).Error(0)
}

func (m *MockFavoriteRepository) ListTracks(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FavoriteTrack), args.Error(1)
}

type MockProcessedMusicRepository struct {
	mock.Mock
}

func (m *MockProcessedMusicRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProcessedMusic, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ProcessedMusic), args.Error(1)
}

func (m *MockProcessedMusicRepository) GetByUser(ctx context.Context, userID, processID uuid.UUID) (*models.ProcessedMusic, error) {
	args := m.Called(ctx, userID, processID)
	p, _ := args.Get(0).(*models.ProcessedMusic)
	return p, args.Error(1)
}

func (m *MockProcessedMusicRepository) Delete(ctx context.Context, processID uuid.UUID) (*models.ProcessedMusic, error) {
	args := m.Called(ctx, processID)
	p, _ := args.Get(0).(*models.ProcessedMusic)
	return p, args.Error(1)
}

type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) Save(ctx context.Context, userID uuid.UUID, code string, ttl time.Duration) error {
	return m.Called(ctx, userID, code, ttl).Error(0)
}

func (m *MockPasswordResetRepository) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendVerificationEmail(email, link string) error {
	return m.Called(email, link).Error(0)
}

func (m *MockEmailService) SendPasswordResetCode(email, code string) error {
	return m.Called(email, code).Error(0)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) EmailFromToken(ctx context.Context, accessToken string) (string, error) {
	args := m.Called(ctx, accessToken)
	return args.String(0), args.Error(1)
}

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) ProcessYoutube(ctx context.Context, userID, videoID string) error {
	return m.Called(ctx, userID, videoID).Error(0)
}

func (m *MockProcessor) ProcessFile(ctx context.Context, userID, fileName, filePath string) error {
	return m.Called(ctx, userID, fileName, filePath).Error(0)
}

func (m *MockProcessor) GenerateTrack(ctx context.Context, req utils.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, r, size, contentType).Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) RemoveAll(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func (m *MockStorage) Locate(key string) string {
	return m.Called(key).String(0)
}
