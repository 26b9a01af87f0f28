package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"melodistic/internal/middleware"
	"melodistic/internal/models"
	"melodistic/internal/services"
)

type TrackHandler struct {
	tracks services.TrackService
	log    zerolog.Logger
}

func NewTrackHandler(tracks services.TrackService, log zerolog.Logger) *TrackHandler {
	return &TrackHandler{tracks: tracks, log: log}
}

// List returns the public catalog. A signed-in caller also gets is_favorite per track.
//
// @Summary      List tracks
// @Tags         Track
// @Produce      json
// @Success      200  {array}   models.FavoriteTrack
// @Router       /track [get]
func (h *TrackHandler) List(c *gin.Context) {
	if userID, ok := middleware.UserID(c); ok {
		tracks, err := h.tracks.ListTracksForUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, tracks)
		return
	}

	tracks, err := h.tracks.ListTracks(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

// @Summary      Get track
// @Tags         Track
// @Produce      json
// @Security     BearerAuth
// @Param        trackId  path      string  true  "Track ID"
// @Success      200      {object}  models.Track
// @Failure      404      {object}  errorResponse
// @Router       /track/{trackId} [get]
func (h *TrackHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trackID, ok := uuidParam(c, "trackId")
	if !ok {
		return
	}
	track, err := h.tracks.GetTrack(c.Request.Context(), userID, trackID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, track)
}

// @Summary      Generate track
// @Tags         Track
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.CreateTrackRequest  true  "Program"
// @Success      200   {object}  models.StatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /track [post]
func (h *TrackHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	trackID, err := h.tracks.CreateTrack(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  http.StatusOK,
		Message: "Track created successfully",
		TrackID: trackID.String(),
	})
}

// @Summary      Update track image
// @Tags         Track
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        trackId        path      string  true  "Track ID"
// @Param        program_image  formData  file    true  "PNG, JPEG or HEIC up to 5MB"
// @Success      200            {object}  models.Track
// @Failure      404            {object}  errorResponse
// @Failure      415            {object}  errorResponse
// @Router       /track/{trackId}/image [post]
func (h *TrackHandler) UpdateImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trackID, ok := uuidParam(c, "trackId")
	if !ok {
		return
	}
	upload, f, ok := formFile(c, "program_image")
	if !ok {
		return
	}
	defer f.Close()

	track, err := h.tracks.UpdateTrackImage(c.Request.Context(), userID, trackID, upload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, track)
}

// @Summary      Delete generated track
// @Tags         Track
// @Produce      json
// @Security     BearerAuth
// @Param        trackId  path      string  true  "Track ID"
// @Success      200      {object}  models.StatusResponse
// @Failure      404      {object}  errorResponse
// @Router       /track/{trackId} [delete]
func (h *TrackHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trackID, ok := uuidParam(c, "trackId")
	if !ok {
		return
	}
	if err := h.tracks.DeleteTrack(c.Request.Context(), userID, trackID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: http.StatusOK, Message: "Track deleted"})
}
