package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	apperrors "checkin/errors"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssetAPI struct {
	uploadParams  uploader.UploadParams
	uploadBody    []byte
	uploadResult  *uploader.UploadResult
	uploadErr     error
	destroyed     []string
	destroyResult *uploader.DestroyResult
	destroyErr    error
}

func (f *fakeAssetAPI) Upload(_ context.Context, file interface{}, p uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadParams = p
	if r, ok := file.(io.Reader); ok {
		f.uploadBody, _ = io.ReadAll(r)
	}
	return f.uploadResult, f.uploadErr
}

func (f *fakeAssetAPI) Destroy(_ context.Context, p uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, p.PublicID)
	if f.destroyResult == nil {
		return &uploader.DestroyResult{Result: "ok"}, f.destroyErr
	}
	return f.destroyResult, f.destroyErr
}

func TestCloudinaryUploaderStreamsToFolder(t *testing.T) {
	api := &fakeAssetAPI{uploadResult: &uploader.UploadResult{
		PublicID:  "checkins/xyz",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/checkins/xyz.jpg",
	}}
	u := &CloudinaryUploader{api: api, folder: "checkins", preset: "signed"}

	res, err := u.Upload(context.Background(), bytes.NewReader(jpegBytes), "car.jpg")
	require.NoError(t, err)

	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/checkins/xyz.jpg", res.URL)
	assert.Equal(t, "checkins/xyz", res.PublicID)
	assert.Equal(t, "checkins", api.uploadParams.Folder)
	assert.Equal(t, "signed", api.uploadParams.UploadPreset)
	assert.Equal(t, jpegBytes, api.uploadBody)
}

func TestCloudinaryUploaderErrors(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeAssetAPI
	}{
		{"transport", &fakeAssetAPI{uploadErr: errors.New("dial tcp: no route to host")}},
		{"api error", &fakeAssetAPI{uploadResult: func() *uploader.UploadResult {
			r := &uploader.UploadResult{}
			r.Error.Message = "Invalid Signature"
			return r
		}()}},
		{"empty url", &fakeAssetAPI{uploadResult: &uploader.UploadResult{PublicID: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &CloudinaryUploader{api: tt.api}
			res, err := u.Upload(context.Background(), bytes.NewReader(jpegBytes), "car.jpg")
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUploadFailed))
		})
	}
}

func TestCloudinaryUploaderRemove(t *testing.T) {
	api := &fakeAssetAPI{}
	u := &CloudinaryUploader{api: api}

	require.NoError(t, u.Remove(context.Background(), "checkins/xyz"))
	assert.Equal(t, []string{"checkins/xyz"}, api.destroyed)

	api.destroyResult = &uploader.DestroyResult{}
	api.destroyResult.Error.Message = "rate limited"
	assert.Error(t, u.Remove(context.Background(), "checkins/abc"))
}
