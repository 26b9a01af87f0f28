package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"melodistic/internal/middleware"
	"melodistic/internal/models"
	"melodistic/internal/services"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) Signin(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) AuthWithGoogle(ctx context.Context, accessToken string) (string, error) {
	args := m.Called(ctx, accessToken)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, recentPassword, newPassword string) error {
	return m.Called(ctx, userID, recentPassword, newPassword).Error(0)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserService) UpdateExerciseDuration(ctx context.Context, userID uuid.UUID, hour, minute int) error {
	return m.Called(ctx, userID, hour, minute).Error(0)
}

func (m *MockUserService) UploadProfileImage(ctx context.Context, userID uuid.UUID, file services.FileUpload) (string, error) {
	body, _ := io.ReadAll(file.Body)
	args := m.Called(ctx, userID, file.Filename, file.ContentType, string(body))
	return args.String(0), args.Error(1)
}

type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) RequestReset(ctx context.Context, email string) (*models.PasswordResetTicket, error) {
	args := m.Called(ctx, email)
	t, _ := args.Get(0).(*models.PasswordResetTicket)
	return t, args.Error(1)
}

func (m *MockPasswordResetService) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	args := m.Called(ctx, email, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPasswordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.Called(ctx, email, code, newPassword).Error(0)
}

type MockTrackService struct {
	mock.Mock
}

func (m *MockTrackService) ListTracks(ctx context.Context) ([]models.Track, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]models.Track)
	return t, args.Error(1)
}

func (m *MockTrackService) ListTracksForUser(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).([]models.FavoriteTrack)
	return t, args.Error(1)
}

func (m *MockTrackService) GetTrack(ctx context.Context, userID, trackID uuid.UUID) (*models.Track, error) {
	args := m.Called(ctx, userID, trackID)
	t, _ := args.Get(0).(*models.Track)
	return t, args.Error(1)
}

func (m *MockTrackService) CreateTrack(ctx context.Context, userID uuid.UUID, req models.CreateTrackRequest) (uuid.UUID, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTrackService) UpdateTrackImage(ctx context.Context, userID, trackID uuid.UUID, file services.FileUpload) (*models.Track, error) {
	args := m.Called(ctx, userID, trackID, file.Filename)
	t, _ := args.Get(0).(*models.Track)
	return t, args.Error(1)
}

func (m *MockTrackService) DeleteTrack(ctx context.Context, userID, trackID uuid.UUID) error {
	return m.Called(ctx, userID, trackID).Error(0)
}

func (m *MockTrackService) Library(ctx context.Context, userID uuid.UUID) ([]models.GeneratedTrack, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).([]models.GeneratedTrack)
	return t, args.Error(1)
}

func (m *MockTrackService) Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteTrack, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).([]models.FavoriteTrack)
	return t, args.Error(1)
}

func (m *MockTrackService) ToggleFavorite(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, trackID)
	return args.Bool(0), args.Error(1)
}

type MockProcessService struct {
	mock.Mock
}

func (m *MockProcessService) List(ctx context.Context, userID uuid.UUID) ([]models.ProcessedMusic, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]models.ProcessedMusic)
	return p, args.Error(1)
}

func (m *MockProcessService) ProcessYoutube(ctx context.Context, userID uuid.UUID, rawURL string) error {
	return m.Called(ctx, userID, rawURL).Error(0)
}

func (m *MockProcessService) ProcessFile(ctx context.Context, userID uuid.UUID, file services.FileUpload) error {
	return m.Called(ctx, userID, file.Filename, file.ContentType).Error(0)
}

func (m *MockProcessService) Delete(ctx context.Context, userID, processID uuid.UUID) (*models.ProcessedMusic, error) {
	args := m.Called(ctx, userID, processID)
	p, _ := args.Get(0).(*models.ProcessedMusic)
	return p, args.Error(1)
}

// staticParser accepts the token "good" as testUserID.
type staticParser struct{}

var testUserID = uuid.MustParse("6f1c1d55-4a5d-4a5e-9d5c-2b7d3f6f0a01")

func (staticParser) ParseToken(token string) (uuid.UUID, error) {
	if token == "good" {
		return testUserID, nil
	}
	return uuid.Nil, services.ErrTokenInvalid
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	return gin.New()
}

func guard() gin.HandlerFunc {
	return middleware.AuthMiddleware(staticParser{})
}

var nopLog = zerolog.Nop()

func doJSON(t *testing.T, r http.Handler, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer good")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, r http.Handler, path, field, filename, contentType, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
