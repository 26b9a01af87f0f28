package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"melodistic/internal/models"
	"melodistic/internal/services"
)

type AuthHandler struct {
	users  services.UserService
	resets services.PasswordResetService
	log    zerolog.Logger
}

func NewAuthHandler(users services.UserService, resets services.PasswordResetService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, resets: resets, log: log}
}

// @Summary      Sign up
// @Description  Creates an account, sends a verification email and returns a token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.AuthRequest  true  "Credentials"
// @Success      201   {object}  models.AuthResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.users.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, models.AuthResponse{Token: token})
}

// @Summary      Sign in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.AuthRequest  true  "Credentials"
// @Success      200   {object}  models.AuthResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.users.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Info().Str("email", req.Email).Msg("[auth][signin] rejected")
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token})
}

// @Summary      Sign in with Google
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.GoogleAuthRequest  true  "Google access token"
// @Success      200   {object}  models.AuthResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/google [post]
func (h *AuthHandler) Google(c *gin.Context) {
	var req models.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.users.AuthWithGoogle(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token})
}

// @Summary      Verify email
// @Tags         Auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  map[string]bool
// @Failure      422    {object}  errorResponse
// @Router       /auth/verify [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "token is required"})
		return
	}
	if err := h.users.VerifyEmail(c.Request.Context(), token); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Request a password reset code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RequestResetPasswordRequest  true  "Email"
// @Success      200   {object}  models.PasswordResetTicket
// @Failure      404   {object}  errorResponse
// @Router       /auth/forget-password [post]
func (h *AuthHandler) ForgetPassword(c *gin.Context) {
	var req models.RequestResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ticket, err := h.resets.RequestReset(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// @Summary      Check a password reset code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyResetPasswordRequest  true  "Email and code"
// @Success      200   {object}  map[string]bool
// @Failure      422   {object}  errorResponse
// @Router       /auth/reset-password/verify [post]
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req models.VerifyResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ok, err := h.resets.VerifyCode(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !ok {
		respondError(c, h.log, services.ErrTokenInvalid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Reset password with a code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.ResetPasswordRequest  true  "Email, code and new password"
// @Success      200   {object}  map[string]bool
// @Failure      422   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.resets.ResetPassword(c.Request.Context(), req.Email, req.Token, req.Password); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Change password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ChangePasswordRequest  true  "Current and new password"
// @Success      200   {object}  map[string]bool
// @Failure      401   {object}  errorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), userID, req.RecentPassword, req.NewPassword); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
