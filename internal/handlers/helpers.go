package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"melodistic/internal/middleware"
	"melodistic/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrInvalidYoutubeURL, http.StatusBadRequest},
	{services.ErrInvalidDuration, http.StatusBadRequest},
	{services.ErrUserExists, http.StatusConflict},
	{services.ErrEmailNotFound, http.StatusNotFound},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrTrackNotFound, http.StatusNotFound},
	{services.ErrProcessNotFound, http.StatusNotFound},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrIncorrectPassword, http.StatusUnauthorized},
	{services.ErrGoogleAuth, http.StatusUnauthorized},
	{services.ErrTokenInvalid, http.StatusUnprocessableEntity},
	{services.ErrTokenExpired, http.StatusUnprocessableEntity},
	{services.ErrAlreadyVerified, http.StatusUnprocessableEntity},
	{services.ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
	{services.ErrUpstream, http.StatusBadGateway},
	{services.ErrCreateUser, http.StatusInternalServerError},
}

// respondError maps service errors onto HTTP statuses. Unknown errors are logged and hidden.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			msg := e.err.Error()
			if e.status == http.StatusBadGateway || e.status == http.StatusUnsupportedMediaType {
				msg = err.Error()
			}
			c.AbortWithStatusJSON(e.status, errorResponse{Error: msg})
			return
		}
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}
	return id, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// formFile opens a multipart upload. The caller closes the returned file.
func formFile(c *gin.Context, field string) (services.FileUpload, multipart.File, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: field + " file is required"})
		return services.FileUpload{}, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "cannot read " + field})
		return services.FileUpload{}, nil, false
	}
	return services.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, true
}
