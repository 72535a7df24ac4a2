package config

import (
	"fmt"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithMemoryImageStore configures the in-memory image store (for testing)
func WithMemoryImageStore() Option {
	return func(c *ServerConfig) error {
		c.ImageStore = ImageStoreConfig{
			Type:   "memory",
			Config: map[string]interface{}{},
		}
		return nil
	}
}

// WithFilesystemImageStore configures the filesystem image store
func WithFilesystemImageStore(baseDir, urlPrefix string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}

		store := ImageStoreConfig{
			Type: "fs",
			Config: map[string]interface{}{
				"base_dir": baseDir,
			},
		}
		if urlPrefix != "" {
			store.Config["url_prefix"] = urlPrefix
		}

		c.ImageStore = store
		return nil
	}
}

// WithS3ImageStore configures the S3 image store
func WithS3ImageStore(bucket, region string) Option {
	return func(c *ServerConfig) error {
		if bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
		if region == "" {
			region = "us-east-1" // Default region
		}

		c.ImageStore = ImageStoreConfig{
			Type: "s3",
			Config: map[string]interface{}{
				"bucket": bucket,
				"region": region,
			},
		}
		return nil
	}
}

// WithS3Credentials sets AWS credentials for the S3 image store
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		if c.ImageStore.Type != "s3" {
			return fmt.Errorf("S3 credentials require an S3 image store")
		}
		c.ImageStore.Config["access_key_id"] = accessKeyID
		c.ImageStore.Config["secret_access_key"] = secretAccessKey
		return nil
	}
}

// WithS3Endpoint sets a custom S3 endpoint (for MinIO, LocalStack, etc.)
func WithS3Endpoint(endpoint string, usePathStyle bool) Option {
	return func(c *ServerConfig) error {
		if c.ImageStore.Type != "s3" {
			return fmt.Errorf("S3 endpoint requires an S3 image store")
		}
		c.ImageStore.Config["endpoint"] = endpoint
		c.ImageStore.Config["use_path_style"] = usePathStyle
		return nil
	}
}

// WithPublicBaseURL sets the public base URL under which hosted images are served
func WithPublicBaseURL(baseURL string) Option {
	return func(c *ServerConfig) error {
		if baseURL == "" {
			return fmt.Errorf("public base URL cannot be empty")
		}
		switch c.ImageStore.Type {
		case "fs":
			c.ImageStore.Config["url_prefix"] = baseURL
		case "s3":
			c.ImageStore.Config["public_base_url"] = baseURL
		default:
			return fmt.Errorf("public base URL requires an fs or s3 image store")
		}
		return nil
	}
}
