package services

import (
	"context"
	"fmt"
	"io"

	"checkin/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type assetAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryUploader streams images through the signed SDK upload API
type CloudinaryUploader struct {
	api    assetAPI
	folder string
	preset string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary, folder, preset string) *CloudinaryUploader {
	return &CloudinaryUploader{api: &cld.Upload, folder: folder, preset: preset}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	resp, err := u.api.Upload(ctx, r, uploader.UploadParams{
		Folder:       u.folder,
		UploadPreset: u.preset,
	})
	if err != nil {
		return nil, errors.UploadFailed(fmt.Errorf("upload %s: %w", filename, err))
	}
	if resp.Error.Message != "" {
		return nil, errors.UploadFailed(fmt.Errorf("upload %s: %s", filename, resp.Error.Message))
	}
	if resp.SecureURL == "" {
		return nil, errors.UploadFailed(errors.ErrEmptyURL)
	}
	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Remove destroys the asset; an already missing asset is not an error
func (u *CloudinaryUploader) Remove(ctx context.Context, publicID string) error {
	resp, err := u.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}
