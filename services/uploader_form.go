package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"checkin/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"
)

const maxHostResponse = 1 << 20

// FormUploaderConfig configures an unsigned upload-preset form post
type FormUploaderConfig struct {
	BaseURL    string
	CloudName  string
	Preset     string
	Folder     string
	HTTPClient *http.Client
}

// FormPostUploader posts the image as a base64 data URI together with an
// upload preset, the way browser clients talk to the media host.
type FormPostUploader struct {
	endpoint string
	preset   string
	folder   string
	client   *http.Client
}

func NewFormPostUploader(cfg FormUploaderConfig) *FormPostUploader {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &FormPostUploader{
		endpoint: fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(cfg.BaseURL, "/"), cfg.CloudName),
		preset:   cfg.Preset,
		folder:   cfg.Folder,
		client:   client,
	}
}

type hostUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (u *FormPostUploader) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.UploadFailed(fmt.Errorf("read %s: %w", filename, err))
	}
	if len(data) == 0 {
		return nil, errors.UploadFailed(errors.ErrMissingFile)
	}

	body, contentType, err := u.encodeForm(data)
	if err != nil {
		return nil, errors.UploadFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return nil, errors.UploadFailed(err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, errors.UploadFailed(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxHostResponse))
	if err != nil {
		return nil, errors.UploadFailed(err)
	}

	var out hostUploadResponse
	decodeErr := json.Unmarshal(raw, &out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return nil, errors.UploadFailed(fmt.Errorf("media host status %d: %s", resp.StatusCode, msg))
	}
	if decodeErr != nil {
		return nil, errors.UploadFailed(fmt.Errorf("decode media host response: %w", decodeErr))
	}
	if out.SecureURL == "" {
		return nil, errors.UploadFailed(errors.ErrEmptyURL)
	}
	return &UploadResult{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

func (u *FormPostUploader) encodeForm(data []byte) (io.Reader, string, error) {
	mt := mimetype.Detect(data)
	dataURI := "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{{"file", dataURI}, {"upload_preset", u.preset}}
	if u.folder != "" {
		fields = append(fields, [2]string{"folder", u.folder})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
