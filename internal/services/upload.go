package services

import (
	"fmt"
	"io"
	"strings"
)

const (
	maxImageSize = 5 << 20
	maxMusicSize = 100 << 20
)

var imageExt = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/heic": "heic",
}

// FileUpload is a multipart file handed over by the HTTP layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// imageExtension validates an uploaded image and returns the extension used to store it.
func imageExtension(f FileUpload) (string, error) {
	ext, ok := imageExt[strings.ToLower(f.ContentType)]
	if !ok {
		return "", fmt.Errorf("%w: only png, jpeg and heic images are allowed", ErrUnsupportedMedia)
	}
	if f.Size > maxImageSize {
		return "", fmt.Errorf("%w: image larger than 5MB", ErrUnsupportedMedia)
	}
	return ext, nil
}

func checkMusic(f FileUpload) error {
	if strings.ToLower(f.ContentType) != "audio/wav" {
		return fmt.Errorf("%w: only wav audio files are allowed", ErrUnsupportedMedia)
	}
	if f.Size > maxMusicSize {
		return fmt.Errorf("%w: audio larger than 100MB", ErrUnsupportedMedia)
	}
	return nil
}
