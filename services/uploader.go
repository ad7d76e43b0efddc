package services

import (
	"context"
	"io"
)

// UploadResult identifies an asset stored at the media host
type UploadResult struct {
	URL      string
	PublicID string
}

// MediaUploader pushes one image to the media host. Failures are AppErrors
// with UPLOAD_FAILED; a nil error always comes with a non-empty URL.
type MediaUploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error)
}

// AssetRemover is implemented by uploaders able to delete what they stored
type AssetRemover interface {
	Remove(ctx context.Context, publicID string) error
}
