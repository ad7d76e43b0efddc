package config

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ConnectCloudinary builds the signed SDK client used by the sdk upload flow
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for UPLOAD_MODE=%s", UploadSDK)
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return cld, nil
}
