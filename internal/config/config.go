package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DebugModeEnv is the environment variable for debug mode.
	DebugModeEnv = "DEBUG_MODE"

	// DBHostEnv is the environment variable for database host.
	DBHostEnv = "DB_HOST"

	// DBPortEnv is the environment variable for database port.
	DBPortEnv = "DB_PORT"

	// DBUserEnv is the environment variable for database user.
	DBUserEnv = "DB_USER"

	// DBPassEnv is the environment variable for database password.
	DBPassEnv = "DB_PASS"

	// DBNameEnv is the environment variable for database name.
	DBNameEnv = "DB_NAME"

	// HTTPServerPortEnv is the environment variable for HTTP server port.
	HTTPServerPortEnv = "HTTP_SERVER_PORT"

	// MetricsServerPortEnv is the environment variable for metrics server port.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// EnvFilePath is the environment variable for .env file path (only for local/test environment).
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is the default path to the .env file.
	DefaultEnvFilePath = ".env"

	// JWTSecretEnv is the environment variable for the token signing secret.
	JWTSecretEnv = "JWT_SECRET"

	// AdminEmailEnv is the environment variable for the seeded admin email.
	AdminEmailEnv = "ADMIN_EMAIL"

	// AdminPasswordEnv is the environment variable for the seeded admin password.
	AdminPasswordEnv = "ADMIN_PASSWORD"

	// ProtectProductsEnv is the environment variable that gates bearer auth on product mutation routes.
	ProtectProductsEnv = "AUTH_PROTECT_PRODUCTS"

	// StorageDriverEnv selects the blob storage backend: "local" or "s3".
	StorageDriverEnv = "STORAGE_DRIVER"

	// UploadsDirEnv is the environment variable for the local uploads directory.
	UploadsDirEnv = "UPLOADS_DIR"

	// PublicBaseURLEnv is the environment variable for the public base URL of local uploads.
	PublicBaseURLEnv = "PUBLIC_BASE_URL"

	// StorageEndpointEnv is the environment variable for the S3-compatible endpoint.
	StorageEndpointEnv = "STORAGE_ENDPOINT"

	// StorageAccessKeyEnv is the environment variable for the storage access key.
	StorageAccessKeyEnv = "STORAGE_ACCESS_KEY"

	// StorageSecretKeyEnv is the environment variable for the storage secret key.
	StorageSecretKeyEnv = "STORAGE_SECRET_KEY"

	// StorageBucketEnv is the environment variable for the storage bucket name.
	StorageBucketEnv = "STORAGE_BUCKET"

	// StoragePublicBaseEnv is the environment variable for the public base URL of stored objects.
	StoragePublicBaseEnv = "STORAGE_PUBLIC_BASE"

	// StorageUseSSLEnv is the environment variable for TLS on the storage endpoint.
	StorageUseSSLEnv = "STORAGE_USE_SSL"

	// AWSRegionEnv is the environment variable for AWS region.
	AWSRegionEnv = "AWS_REGION"

	// AWSEndpointEnv is the environment variable for AWS endpoint.
	AWSEndpointEnv = "AWS_ENDPOINT"

	// SQSQueueURLEnv is the environment variable for SQS queue URL.
	// Leaving it empty disables product event publishing.
	SQSQueueURLEnv = "SQS_QUEUE_URL"

	// StorageDriverLocal stores uploads on the local filesystem.
	StorageDriverLocal = "local"

	// StorageDriverS3 stores uploads in an S3-compatible object store.
	StorageDriverS3 = "s3"

	// DefaultUploadsDir is the default local uploads directory.
	DefaultUploadsDir = "uploads"
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")
)

// Config represents the application configuration.
type Config struct {
	DebugMode       bool
	Database        DB
	HTTPServer      Server
	MetricsServer   Server
	Auth            Auth
	Storage         Storage
	AWS             AWSConfig
	ProtectProducts bool
}

// Auth represents token signing and admin bootstrap settings.
type Auth struct {
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
}

// Storage represents blob storage configuration settings.
type Storage struct {
	Driver        string
	UploadsDir    string
	PublicBaseURL string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBase    string
	UseSSL        bool
}

// AWSConfig represents AWS-specific configuration settings.
type AWSConfig struct {
	Region      string
	Endpoint    string
	SQSQueueURL string
}

// DB represents database configuration settings.
type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// Server represents server configuration settings.
type Server struct {
	Port string
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		_, err := strconv.Atoi(value)
		if err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.String("error", err.Error()))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	// Validate database configuration
	if err := allNonEmpty(map[string]string{
		DBHostEnv: c.Database.Host,
		DBUserEnv: c.Database.User,
		DBNameEnv: c.Database.Name,
	}); err != nil {
		return fmt.Errorf("database configuration incomplete: %w", err)
	}

	// Validate server ports and token secret
	if err := allNonEmpty(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
		JWTSecretEnv:         c.Auth.JWTSecret,
	}); err != nil {
		return fmt.Errorf("server configuration incomplete: %w", err)
	}

	// Validate port numbers
	if err := allNumbers(map[string]string{
		DBPortEnv:            c.Database.Port,
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	// Validate storage configuration
	switch c.Storage.Driver {
	case StorageDriverLocal:
		if err := allNonEmpty(map[string]string{
			UploadsDirEnv: c.Storage.UploadsDir,
		}); err != nil {
			return fmt.Errorf("local storage configuration incomplete: %w", err)
		}
	case StorageDriverS3:
		if err := allNonEmpty(map[string]string{
			StorageEndpointEnv:  c.Storage.Endpoint,
			StorageAccessKeyEnv: c.Storage.AccessKey,
			StorageSecretKeyEnv: c.Storage.SecretKey,
			StorageBucketEnv:    c.Storage.Bucket,
		}); err != nil {
			return fmt.Errorf("object storage configuration incomplete: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrMissingConfig, c.Storage.Driver)
	}

	return nil
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvOrDefault(name, defaultValue string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return defaultValue
}

// ApplyEnvFile loads environment variables from the specified .env files.
func ApplyEnvFile(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	err := ApplyEnvFile(envPath)
	if err != nil {
		// just log the error, maybe all envs are set in another way
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	conf := &Config{
		DebugMode: getEnvAsBool(DebugModeEnv, false),
		Database: DB{
			Host:     os.Getenv(DBHostEnv),
			User:     os.Getenv(DBUserEnv),
			Password: os.Getenv(DBPassEnv),
			Name:     os.Getenv(DBNameEnv),
			Port:     os.Getenv(DBPortEnv),
		},
		HTTPServer: Server{
			Port: os.Getenv(HTTPServerPortEnv),
		},
		MetricsServer: Server{
			Port: os.Getenv(MetricsServerPortEnv),
		},
		Auth: Auth{
			JWTSecret:     os.Getenv(JWTSecretEnv),
			AdminEmail:    os.Getenv(AdminEmailEnv),
			AdminPassword: os.Getenv(AdminPasswordEnv),
		},
		Storage: Storage{
			Driver:        getEnvOrDefault(StorageDriverEnv, StorageDriverLocal),
			UploadsDir:    getEnvOrDefault(UploadsDirEnv, DefaultUploadsDir),
			PublicBaseURL: os.Getenv(PublicBaseURLEnv),
			Endpoint:      os.Getenv(StorageEndpointEnv),
			AccessKey:     os.Getenv(StorageAccessKeyEnv),
			SecretKey:     os.Getenv(StorageSecretKeyEnv),
			Bucket:        os.Getenv(StorageBucketEnv),
			PublicBase:    os.Getenv(StoragePublicBaseEnv),
			UseSSL:        getEnvAsBool(StorageUseSSLEnv, false),
		},
		AWS: AWSConfig{
			Region:      os.Getenv(AWSRegionEnv),
			Endpoint:    os.Getenv(AWSEndpointEnv),
			SQSQueueURL: os.Getenv(SQSQueueURLEnv),
		},
		ProtectProducts: getEnvAsBool(ProtectProductsEnv, false),
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}
