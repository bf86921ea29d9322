package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// AdminEmail is granted the admin role at sign-up.
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`
	NotifyWorkers int           `env:"NOTIFY_WORKERS, default=4"`
	PhoneRequired bool          `env:"PHONE_REQUIRED, default=false"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gym_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type CloudinaryConfig struct {
	BaseURL      string `env:"CLOUDINARY_BASE_URL,      default=https://api.cloudinary.com"`
	CloudName    string `env:"CLOUDINARY_CLOUD_NAME"`
	UploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
