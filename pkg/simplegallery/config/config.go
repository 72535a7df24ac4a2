package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery/repo/memory"
	repopg "github.com/pixelgrove/simple-gallery/pkg/simplegallery/repo/postgres"
	fsstorage "github.com/pixelgrove/simple-gallery/pkg/simplegallery/storage/fs"
	memorystorage "github.com/pixelgrove/simple-gallery/pkg/simplegallery/storage/memory"
	s3storage "github.com/pixelgrove/simple-gallery/pkg/simplegallery/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		ImageStore: ImageStoreConfig{
			Type:   "memory",
			Config: map[string]interface{}{},
		},
	}
}

// ServerConfig represents server configuration for the simple-gallery service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Image hosting configuration
	ImageStore ImageStoreConfig
}

// ImageStoreConfig represents configuration for the image store backend
type ImageStoreConfig struct {
	Type   string // "memory", "fs", "s3"
	Config map[string]interface{}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.ImageStore.Type {
	case "memory", "fs", "s3":
	default:
		return fmt.Errorf("image store type must be 'memory', 'fs' or 's3', got '%s'", c.ImageStore.Type)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (simplegallery.Service, error) {
	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildImageStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build image store: %w", err)
	}

	return simplegallery.New(
		simplegallery.WithRepository(repo),
		simplegallery.WithImageStore(store),
	)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (simplegallery.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, errors.New("database_url is required for postgres")
		}
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.New(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// PingPostgres verifies connectivity to Postgres.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// buildImageStore creates an ImageStore based on the configuration
func (c *ServerConfig) buildImageStore() (simplegallery.ImageStore, error) {
	switch c.ImageStore.Type {
	case "memory":
		return memorystorage.New(), nil

	case "fs":
		fsConfig := fsstorage.Config{
			BaseDir:   getString(c.ImageStore.Config, "base_dir", "./data/images"),
			URLPrefix: getString(c.ImageStore.Config, "url_prefix", "http://localhost:"+c.Port+"/images"),
		}
		return fsstorage.New(fsConfig)

	case "s3":
		s3Config := s3storage.Config{
			Region:                 getString(c.ImageStore.Config, "region", "us-east-1"),
			Bucket:                 getString(c.ImageStore.Config, "bucket", ""),
			AccessKeyID:            getString(c.ImageStore.Config, "access_key_id", ""),
			SecretAccessKey:        getString(c.ImageStore.Config, "secret_access_key", ""),
			Endpoint:               getString(c.ImageStore.Config, "endpoint", ""),
			UsePathStyle:           getBool(c.ImageStore.Config, "use_path_style", false),
			PublicBaseURL:          getString(c.ImageStore.Config, "public_base_url", ""),
			CreateBucketIfNotExist: getBool(c.ImageStore.Config, "create_bucket_if_not_exist", false),
		}
		return s3storage.New(s3Config)

	default:
		return nil, fmt.Errorf("unsupported image store type: %s", c.ImageStore.Type)
	}
}

func getString(config map[string]interface{}, key string, defaultValue string) string {
	if value, exists := config[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

func getBool(config map[string]interface{}, key string, defaultValue bool) bool {
	if value, exists := config[key]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
		if str, ok := value.(string); ok {
			if b, err := strconv.ParseBool(str); err == nil {
				return b
			}
		}
	}
	return defaultValue
}
