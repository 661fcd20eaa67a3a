package s3fs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig is returned by New for an incomplete Config.
var ErrInvalidConfig = errors.New("s3fs: invalid configuration")

// Default values.
const (
	DefaultRegion  = "us-east-1"
	DefaultTimeout = 10 * time.Second
)

// Config configures an S3 backed file system.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"S3_BUCKET"`

	// Prefix is the key prefix treated as the file system root (optional).
	Prefix string `env:"S3_PREFIX"`

	// AccessKey is the access key ID (required).
	AccessKey string `env:"S3_ACCESS_KEY"`

	// SecretKey is the secret access key (required).
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL, for MinIO or other S3-compatible services.
	Endpoint string `env:"S3_ENDPOINT"`

	// Region is the bucket region (default: us-east-1).
	Region string `env:"S3_REGION" envDefault:"us-east-1"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `env:"S3_PATH_STYLE"`

	// Timeout bounds each request to the service (default: 10s).
	Timeout time.Duration `env:"S3_TIMEOUT" envDefault:"10s"`
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.Prefix = strings.Trim(c.Prefix, "/")
}

func (c *Config) validate() error {
	switch {
	case c.Bucket == "":
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	case c.AccessKey == "":
		return fmt.Errorf("%w: access key is required", ErrInvalidConfig)
	case c.SecretKey == "":
		return fmt.Errorf("%w: secret key is required", ErrInvalidConfig)
	}
	return nil
}
