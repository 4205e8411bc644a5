package domain

import (
	"context"
	"io"
)

// UploadResult is the media host's reference to a stored image.
// swagger:model UploadResult
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// MediaUploader is the port to the third-party media host.
type MediaUploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error)
}
