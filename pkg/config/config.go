package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	// Optional API settings
	APIHost     string `mapstructure:"api_host"`
	APIPort     int    `mapstructure:"api_port"`
	Environment string `mapstructure:"environment"` // "development" or "production"

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "json" or "text"

	// Optional JWT settings
	JWTAlgorithm string `mapstructure:"jwt_algorithm"`

	// Record store
	StoreDriver  string `mapstructure:"store_driver"` // "sqlite" or "postgres"
	DatabasePath string `mapstructure:"database_path"`
	DatabaseURL  string `mapstructure:"database_url"`

	// Item images
	ImageStore  string `mapstructure:"image_store"` // "local" or "s3"
	ImageDir    string `mapstructure:"image_dir"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`

	RequireAuthForItemWrites bool `mapstructure:"require_auth_for_item_writes"`

	ConfigPath string `mapstructure:"-"`
}

const (
	DefaultConfigPath   = "/etc/secondchance/config.yml"
	DefaultAPIHost      = "0.0.0.0"
	DefaultAPIPort      = 3060
	DefaultEnvironment  = "development"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultJWTAlgorithm = "HS256"
	DefaultStoreDriver  = "sqlite"
	DefaultDatabasePath = "/var/lib/secondchance/db.sqlite3"
	DefaultImageStore   = "local"
	DefaultImageDir     = "public/images"
	DefaultS3Region     = "us-east-1"

	EnvPrefix = "SECONDCHANCE"
)

// keys lists every setting that may come from the environment alone.
var keys = []string{
	"jwt_secret_key", "api_host", "api_port", "environment",
	"ssl_cert", "ssl_key", "cors_origins",
	"log_file", "log_level", "log_format", "jwt_algorithm",
	"store_driver", "database_path", "database_url",
	"image_store", "image_dir", "s3_bucket", "s3_region", "s3_endpoint", "s3_access_key", "s3_secret_key",
	"require_auth_for_item_writes",
}

// Load reads the YAML config file (if present) and applies SECONDCHANCE_*
// environment overrides. An explicitly requested file must exist; the
// default path is optional.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("store_driver", DefaultStoreDriver)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("image_store", DefaultImageStore)
	v.SetDefault("image_dir", DefaultImageDir)
	v.SetDefault("s3_region", DefaultS3Region)
	v.SetDefault("require_auth_for_item_writes", false)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	switch c.StoreDriver {
	case "sqlite":
		if c.DatabasePath == "" {
			return fmt.Errorf("database_path is required for the sqlite store")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the postgres store")
		}
	default:
		return fmt.Errorf("store_driver must be 'sqlite' or 'postgres'")
	}

	switch c.ImageStore {
	case "local":
		if c.ImageDir == "" {
			return fmt.Errorf("image_dir is required for the local image store")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the s3 image store")
		}
	default:
		return fmt.Errorf("image_store must be 'local' or 's3'")
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log_format must be 'json' or 'text'")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("SECONDCHANCE_DEV_MODE") == "1"
}
