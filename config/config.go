package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	UploadForm = "form"
	UploadSDK  = "sdk"
)

// Config is the process configuration, read from the environment once at startup
type Config struct {
	Port     string `env:"PORT,default=5000"`
	GinMode  string `env:"GIN_MODE,default=release"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	StoreBackend  string        `env:"STORE_BACKEND,default=mongo"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT,default=10s"`
	MongoURI      string        `env:"MONGO_URI"`
	MongoDatabase string        `env:"MONGO_DATABASE,default=checkin"`
	PostgresDSN   string        `env:"POSTGRES_DSN"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisUser     string        `env:"REDIS_USER"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL,default=5m"`

	CloudName           string `env:"CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryPreset    string `env:"CLOUDINARY_PRESET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER,default=checkins"`
	CloudinaryUploadURL string `env:"CLOUDINARY_UPLOAD_URL,default=https://api.cloudinary.com/v1_1"`
	UploadMode          string `env:"UPLOAD_MODE,default=form"`
	CompensateOrphans   bool   `env:"COMPENSATE_ORPHANS,default=false"`

	HealthCheckSchedule string `env:"HEALTH_CHECK_SCHEDULE,default=@every 5m"`
}

// LoadEnv loads .env into the process environment if present
func LoadEnv() error {
	return godotenv.Load()
}

// Load decodes Config from the environment, defaults coming from the env tags,
// and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backends and upload modes. Missing credentials are
// not fatal: the affected requests fail individually at runtime.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unknown GIN_MODE %q", c.GinMode)
	}
	switch c.UploadMode {
	case UploadForm, UploadSDK:
	default:
		return fmt.Errorf("unknown UPLOAD_MODE %q", c.UploadMode)
	}
	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}
