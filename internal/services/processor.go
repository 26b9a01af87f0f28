package services

import (
	"context"
	"errors"
	"fmt"

	"melodistic/internal/utils"
)

// Processor is the part of the external processing API the services call.
type Processor interface {
	ProcessYoutube(ctx context.Context, userID, videoID string) error
	ProcessFile(ctx context.Context, userID, fileName, filePath string) error
	GenerateTrack(ctx context.Context, req utils.GenerateRequest) (string, error)
}

var _ Processor = (*utils.ProcessorClient)(nil)

// upstreamError folds processor failures into ErrUpstream, keeping the upstream message.
func upstreamError(err error) error {
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s", ErrUpstream, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
