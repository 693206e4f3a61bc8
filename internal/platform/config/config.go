// Package config loads service configuration from config.yaml, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// File host providers.
const (
	ProviderUploadThing = "uploadthing"
	ProviderS3          = "s3"
	ProviderNone        = "none"
)

// Config is the whole service configuration, one field per top-level config.yaml section.
type Config struct {
	Server      Server      `mapstructure:"server"`
	Log         Log         `mapstructure:"log"`
	Store       Store       `mapstructure:"store"`
	Mongo       Mongo       `mapstructure:"mongo"`
	Database    Database    `mapstructure:"database"`
	Redis       Redis       `mapstructure:"redis"`
	FileHost    FileHost    `mapstructure:"filehost"`
	UploadThing UploadThing `mapstructure:"uploadthing"`
	S3          S3          `mapstructure:"s3"`
}

// Server configures the HTTP listener.
type Server struct {
	Port            int           `mapstructure:"port"`
	GinMode         string        `mapstructure:"gin_mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Log selects the zap level and encoding (json or console).
type Log struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Store selects the record backend: BackendMongo or BackendPostgres.
type Store struct {
	Backend string `mapstructure:"backend"`
}

// Mongo configures the mongo backend.
type Mongo struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Database configures the postgres backend.
type Database struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Redis configures the orphaned-file ledger. An empty Host disables it.
type Redis struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Namespace string `mapstructure:"namespace"`
}

// Addr returns host:port, or "" when Redis is not configured.
func (r Redis) Addr() string {
	if r.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// FileHost selects where chart images live: ProviderUploadThing, ProviderS3 or ProviderNone.
type FileHost struct {
	Provider string `mapstructure:"provider"`
}

// UploadThing configures the UploadThing file API client.
type UploadThing struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// S3 configures the bucket used for presigned uploads and deletions.
type S3 struct {
	Region        string        `mapstructure:"region"`
	Bucket        string        `mapstructure:"bucket"`
	Prefix        string        `mapstructure:"prefix"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.gin_mode":         "release",
	"server.shutdown_timeout": 10 * time.Second,

	"log.level":    "info",
	"log.encoding": "json",

	"store.backend": BackendMongo,

	"mongo.uri":             "mongodb://localhost:27017",
	"mongo.database":        "trading-journal",
	"mongo.collection":      "images",
	"mongo.connect_timeout": 10 * time.Second,

	"database.host":            "localhost",
	"database.port":            5432,
	"database.user":            "",
	"database.password":        "",
	"database.name":            "trading_journal",
	"database.ssl_mode":        "disable",
	"database.connect_timeout": 60 * time.Second,

	"redis.host":      "",
	"redis.port":      6379,
	"redis.password":  "",
	"redis.db":        0,
	"redis.namespace": "charts",

	"filehost.provider": ProviderUploadThing,

	"uploadthing.api_key":  "",
	"uploadthing.base_url": "https://api.uploadthing.com",
	"uploadthing.timeout":  10 * time.Second,

	"s3.region":          "us-east-1",
	"s3.bucket":          "",
	"s3.prefix":          "charts",
	"s3.public_base_url": "",
	"s3.presign_expiry":  15 * time.Minute,
}

// Load reads configuration. Files named config.yaml are looked up in the given directories
// (default "."); a .env file in the working directory is applied first when present.
// Environment variables override both, with "." replaced by "_" (MONGO_URI, UPLOADTHING_API_KEY).
func Load(configPaths ...string) (*Config, error) {
	// Best-effort: a missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{"."}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// The hosted deployment historically exported MONGODB_URI.
	if err := v.BindEnv("mongo.uri", "MONGO_URI", "MONGODB_URI"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	cfg.FileHost.Provider = strings.ToLower(strings.TrimSpace(cfg.FileHost.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMongo:
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri is required for the mongo backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}

	switch c.FileHost.Provider {
	case ProviderUploadThing:
		if c.UploadThing.APIKey == "" {
			return errors.New("uploadthing.api_key is required for the uploadthing file host")
		}
	case ProviderS3:
		if c.S3.Bucket == "" {
			return errors.New("s3.bucket is required for the s3 file host")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unknown filehost.provider %q", c.FileHost.Provider)
	}
	return nil
}
