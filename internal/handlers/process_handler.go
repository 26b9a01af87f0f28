package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"melodistic/internal/models"
	"melodistic/internal/services"
)

type ProcessHandler struct {
	process services.ProcessService
	log     zerolog.Logger
}

func NewProcessHandler(process services.ProcessService, log zerolog.Logger) *ProcessHandler {
	return &ProcessHandler{process: process, log: log}
}

var processStarted = models.ProcessStartedResponse{StatusCode: http.StatusCreated, Message: "Processing started"}

// @Summary      List processed music
// @Tags         Process
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.ProcessedMusic
// @Router       /process [get]
func (h *ProcessHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	items, err := h.process.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Process music from YouTube
// @Tags         Process
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.YoutubeRequest  true  "Video URL"
// @Success      201   {object}  models.ProcessStartedResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /process/youtube [post]
func (h *ProcessHandler) Youtube(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.YoutubeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.process.ProcessYoutube(c.Request.Context(), userID, req.URL); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, processStarted)
}

// @Summary      Process music from an uploaded file
// @Tags         Process
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        music  formData  file  true  "WAV up to 100MB"
// @Success      201    {object}  models.ProcessStartedResponse
// @Failure      415    {object}  errorResponse
// @Failure      502    {object}  errorResponse
// @Router       /process/file [post]
func (h *ProcessHandler) File(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	upload, f, ok := formFile(c, "music")
	if !ok {
		return
	}
	defer f.Close()

	if err := h.process.ProcessFile(c.Request.Context(), userID, upload); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, processStarted)
}

// @Summary      Delete processed music
// @Tags         Process
// @Produce      json
// @Security     BearerAuth
// @Param        processId  path      string  true  "Process ID"
// @Success      200        {object}  models.ProcessedMusic
// @Failure      404        {object}  errorResponse
// @Router       /process/{processId} [delete]
func (h *ProcessHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	processID, ok := uuidParam(c, "processId")
	if !ok {
		return
	}
	deleted, err := h.process.Delete(c.Request.Context(), userID, processID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
