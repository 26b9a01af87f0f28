package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"melodistic/internal/models"
	"melodistic/internal/services"
)

func newAuthRouter(users *MockUserService, resets *MockPasswordResetService) *gin.Engine {
	h := NewAuthHandler(users, resets, nopLog)
	r := newRouter()
	auth := r.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/signin", h.Signin)
	auth.POST("/google", h.Google)
	auth.GET("/verify", h.VerifyEmail)
	auth.POST("/forget-password", h.ForgetPassword)
	auth.POST("/reset-password/verify", h.VerifyResetCode)
	auth.POST("/reset-password", h.ResetPassword)
	auth.POST("/change-password", guard(), h.ChangePassword)
	auth.GET("/me", guard(), h.Me)
	return r
}

func TestSignup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Signup", mock.Anything, "a@b.co", "pw").Return("jwt", nil)

		w := doJSON(t, newAuthRouter(users, nil), http.MethodPost, "/auth/signup", gin.H{"email": "a@b.co", "password": "pw"}, false)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "jwt", decode(t, w)["token"])
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Signup", mock.Anything, "a@b.co", "pw").Return("", services.ErrUserExists)

		w := doJSON(t, newAuthRouter(users, nil), http.MethodPost, "/auth/signup", gin.H{"email": "a@b.co", "password": "pw"}, false)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "user already exists", decode(t, w)["error"])
	})

	t.Run("invalid email", func(t *testing.T) {
		users := new(MockUserService)

		w := doJSON(t, newAuthRouter(users, nil), http.MethodPost, "/auth/signup", gin.H{"email": "nope", "password": "pw"}, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		users.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSignin(t *testing.T) {
	users := new(MockUserService)
	users.On("Signin", mock.Anything, "a@b.co", "good").Return("jwt", nil)
	users.On("Signin", mock.Anything, "a@b.co", "bad").Return("", services.ErrInvalidCredentials)
	r := newAuthRouter(users, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/signin", gin.H{"email": "a@b.co", "password": "good"}, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jwt", decode(t, w)["token"])

	w = doJSON(t, r, http.MethodPost, "/auth/signin", gin.H{"email": "a@b.co", "password": "bad"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGoogle(t *testing.T) {
	users := new(MockUserService)
	users.On("AuthWithGoogle", mock.Anything, "tok").Return("", services.ErrGoogleAuth)

	w := doJSON(t, newAuthRouter(users, nil), http.MethodPost, "/auth/google", gin.H{"token": "tok"}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "fail to authenticate", decode(t, w)["error"])
}

func TestVerifyEmail(t *testing.T) {
	users := new(MockUserService)
	users.On("VerifyEmail", mock.Anything, "ok").Return(nil)
	users.On("VerifyEmail", mock.Anything, "old").Return(services.ErrTokenExpired)
	r := newAuthRouter(users, nil)

	w := doJSON(t, r, http.MethodGet, "/auth/verify?token=ok", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])

	w = doJSON(t, r, http.MethodGet, "/auth/verify?token=old", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodGet, "/auth/verify", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	resets := new(MockPasswordResetService)
	resets.On("RequestReset", mock.Anything, "a@b.co").Return(&models.PasswordResetTicket{Email: "a@b.co", Token: "123456"}, nil)
	resets.On("RequestReset", mock.Anything, "x@b.co").Return(nil, services.ErrEmailNotFound)
	resets.On("VerifyCode", mock.Anything, "a@b.co", "123456").Return(true, nil)
	resets.On("VerifyCode", mock.Anything, "a@b.co", "000000").Return(false, nil)
	resets.On("ResetPassword", mock.Anything, "a@b.co", "123456", "new").Return(nil)
	r := newAuthRouter(new(MockUserService), resets)

	w := doJSON(t, r, http.MethodPost, "/auth/forget-password", gin.H{"email": "a@b.co"}, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "123456", decode(t, w)["token"])

	w = doJSON(t, r, http.MethodPost, "/auth/forget-password", gin.H{"email": "x@b.co"}, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/reset-password/verify", gin.H{"email": "a@b.co", "token": "123456"}, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/reset-password/verify", gin.H{"email": "a@b.co", "token": "000000"}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/reset-password", gin.H{"email": "a@b.co", "token": "123456", "password": "new"}, false)
	assert.Equal(t, http.StatusOK, w.Code)
	resets.AssertExpectations(t)
}

func TestChangePassword(t *testing.T) {
	users := new(MockUserService)
	users.On("ChangePassword", mock.Anything, testUserID, "old", "new").Return(services.ErrIncorrectPassword)
	r := newAuthRouter(users, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/change-password", gin.H{"recentPassword": "old", "newPassword": "new"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	users.AssertNotCalled(t, "ChangePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	w = doJSON(t, r, http.MethodPost, "/auth/change-password", gin.H{"recentPassword": "old", "newPassword": "new"}, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "incorrect password", decode(t, w)["error"])
}

func TestMe(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		users := new(MockUserService)
		users.On("GetUserByID", mock.Anything, testUserID).Return(&models.User{ID: testUserID, Email: "a@b.co"}, nil)

		w := doJSON(t, newAuthRouter(users, nil), http.MethodGet, "/auth/me", nil, true)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, testUserID.String(), body["user_id"])
		assert.NotContains(t, body, "password")
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		users := new(MockUserService)
		users.On("GetUserByID", mock.Anything, testUserID).Return(nil, errors.New("connection reset"))

		w := doJSON(t, newAuthRouter(users, nil), http.MethodGet, "/auth/me", nil, true)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", decode(t, w)["error"])
	})
}
