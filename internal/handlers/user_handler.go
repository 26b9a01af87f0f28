package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"melodistic/internal/models"
	"melodistic/internal/services"
)

type UserHandler struct {
	users  services.UserService
	tracks services.TrackService
	log    zerolog.Logger
}

func NewUserHandler(users services.UserService, tracks services.TrackService, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, tracks: tracks, log: log}
}

// @Summary      Library
// @Description  Tracks the user generated
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.GeneratedTrack
// @Router       /user/library [get]
func (h *UserHandler) Library(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tracks, err := h.tracks.Library(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

// @Summary      Favorites
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.FavoriteTrack
// @Router       /user/favorite [get]
func (h *UserHandler) Favorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tracks, err := h.tracks.Favorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

// @Summary      Toggle favorite
// @Description  Adds the track to favorites (201) or removes it (200)
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.FavoriteRequest  true  "Track"
// @Success      200   {object}  models.StatusResponse
// @Success      201   {object}  models.StatusResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/favorite [post]
func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	trackID, err := uuid.Parse(req.TrackID)
	if err != nil {
		badRequest(c, err)
		return
	}
	added, err := h.tracks.ToggleFavorite(c.Request.Context(), userID, trackID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if added {
		c.JSON(http.StatusCreated, models.StatusResponse{Status: http.StatusCreated, Message: "Track added to favorite"})
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: http.StatusOK, Message: "Track removed from favorite"})
}

// @Summary      Set exercise duration
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.DurationRequest  true  "Duration"
// @Success      200   {object}  models.StatusResponse
// @Failure      400   {object}  errorResponse
// @Router       /user/duration [post]
func (h *UserHandler) UpdateDuration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.users.UpdateExerciseDuration(c.Request.Context(), userID, *req.DurationHour, *req.DurationMinute); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: http.StatusOK, Message: "Exercise duration updated"})
}

// @Summary      Upload profile image
// @Tags         User
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "PNG, JPEG or HEIC up to 5MB"
// @Success      200    {object}  models.StatusResponse
// @Failure      415    {object}  errorResponse
// @Router       /user/image [post]
func (h *UserHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	upload, f, ok := formFile(c, "image")
	if !ok {
		return
	}
	defer f.Close()

	if _, err := h.users.UploadProfileImage(c.Request.Context(), userID, upload); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: http.StatusOK, Message: "Profile image updated"})
}
