package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendLocal    = "local"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath   string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicBaseURL string `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
		CORSOrigins   string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"` // comma separated
		MaxUploadMB   int    `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`
	} `yaml:"server"`

	Storage struct {
		Backend      string `yaml:"backend" env:"STORAGE_BACKEND"`
		LocalDir     string `yaml:"local_dir" env:"STORAGE_LOCAL_DIR"` // empty keeps the local store in memory
		LocalLatency string `yaml:"local_latency" env:"STORAGE_LOCAL_LATENCY"`
	} `yaml:"storage"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		SeedDefaults    bool   `yaml:"seed_defaults" env:"DB_SEED_DEFAULTS"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
		Audience              string `yaml:"audience" env:"JWT_AUDIENCE"`
	} `yaml:"jwt"`

	// Admin is the bootstrap account: seeded into Postgres when no admin
	// exists, and the only account in local mode.
	Admin struct {
		Username string `yaml:"username" env:"ADMIN_USERNAME"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
		Email    string `yaml:"email" env:"ADMIN_EMAIL"`
		FullName string `yaml:"full_name" env:"ADMIN_FULL_NAME"`
	} `yaml:"admin"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables.
// Precedence, lowest first: defaults, YAML file, .env, process environment.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithEnvFile(configPath, ".env")
}

// LoadConfigWithEnvFile is LoadConfig with an explicit .env location.
// A missing env file is not an error.
func LoadConfigWithEnvFile(configPath, envFile string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// godotenv never overrides variables already present in the environment
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.CORSOrigins = "http://localhost:4200"
	config.Server.MaxUploadMB = 50

	// Storage defaults
	config.Storage.Backend = BackendPostgres
	config.Storage.LocalLatency = "0s"

	// Database defaults
	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "voiceofchrist"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.SeedDefaults = true

	// JWT defaults
	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "VoiceOfChrist.API"
	config.JWT.Audience = "VoiceOfChrist.Client"

	// Admin defaults
	config.Admin.Username = "admin"
	config.Admin.Email = "admin@voiceofchrist.org"
	config.Admin.FullName = "System Administrator"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	var errs []error

	switch config.Storage.Backend {
	case BackendPostgres:
		if config.Database.Driver == "" {
			errs = append(errs, errors.New("database driver is required"))
		}
		if config.Database.Host == "" {
			errs = append(errs, errors.New("database host is required"))
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			errs = append(errs, fmt.Errorf("invalid database connection lifetime: %w", err))
		}
	case BackendLocal:
		if config.Admin.Password == "" {
			errs = append(errs, errors.New("admin password is required for the local backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q, expected %q or %q",
			config.Storage.Backend, BackendPostgres, BackendLocal))
	}

	if _, err := time.ParseDuration(config.Storage.LocalLatency); err != nil {
		errs = append(errs, fmt.Errorf("invalid local latency: %w", err))
	}

	if config.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT secret is required"))
	}

	if d, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		errs = append(errs, fmt.Errorf("invalid JWT access token expiration format: %w", err))
	} else if d <= 0 {
		errs = append(errs, errors.New("JWT access token expiration must be positive"))
	}

	if config.Server.PublicBaseURL != "" {
		if _, err := url.ParseRequestURI(config.Server.PublicBaseURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid public base URL: %w", err))
		}
	}

	return errors.Join(errs...)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// CORSOriginList splits the configured CORS origins
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// MediaBaseURL is the prefix uploaded media URLs are built from
func (c *Config) MediaBaseURL() string {
	return strings.TrimRight(c.Server.PublicBaseURL, "/") + "/uploads"
}

// IsLocalBackend reports whether the emulated local store serves requests
func (c *Config) IsLocalBackend() bool {
	return c.Storage.Backend == BackendLocal
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
