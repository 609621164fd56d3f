package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appDirName = "hostelportal"

// Config structure represents the application configuration
type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url" env:"PORTAL_API_BASE_URL"`
		Timeout time.Duration `yaml:"timeout" env:"PORTAL_API_TIMEOUT"`
	} `yaml:"api"`

	Session struct {
		Path string `yaml:"path" env:"PORTAL_SESSION_PATH"`
	} `yaml:"session"`

	Payment struct {
		AccommodationFee int64 `yaml:"accommodation_fee" env:"PORTAL_ACCOMMODATION_FEE"`
		ServiceFee       int64 `yaml:"service_fee" env:"PORTAL_SERVICE_FEE"`
		MaxReceiptBytes  int64 `yaml:"max_receipt_bytes" env:"PORTAL_MAX_RECEIPT_BYTES"`
	} `yaml:"payment"`

	MockServer struct {
		Port            string        `yaml:"port" env:"MOCK_SERVER_PORT"`
		Mode            string        `yaml:"mode" env:"MOCK_SERVER_MODE"`
		JWTSecret       string        `yaml:"jwt_secret" env:"MOCK_SERVER_JWT_SECRET"`
		TokenExpiration time.Duration `yaml:"token_expiration" env:"MOCK_SERVER_TOKEN_EXPIRATION"`
		Issuer          string        `yaml:"issuer" env:"MOCK_SERVER_ISSUER"`
		SeedDemo        bool          `yaml:"seed_demo_students" env:"MOCK_SERVER_SEED_DEMO"`
	} `yaml:"mock_server"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	return filepath.Join(userDir(), "config.yaml")
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and environment apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
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
	config.API.BaseURL = "http://localhost:5000/api"
	config.API.Timeout = 10 * time.Second

	config.Session.Path = filepath.Join(userDir(), "session.json")

	config.Payment.AccommodationFee = 45000
	config.Payment.ServiceFee = 2000
	config.Payment.MaxReceiptBytes = 5 << 20

	config.MockServer.Port = "5000"
	config.MockServer.Mode = "development"
	config.MockServer.TokenExpiration = 24 * time.Hour
	config.MockServer.Issuer = "hostelportal.mock"
	config.MockServer.SeedDemo = true

	config.Logging.Level = "warn"
	config.Logging.Format = "text"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	u, err := url.Parse(config.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API base URL must be http or https, got %q", config.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API base URL has no host: %q", config.API.BaseURL)
	}

	if config.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	if config.Session.Path == "" {
		return fmt.Errorf("session path is required")
	}

	if config.Payment.AccommodationFee < 0 || config.Payment.ServiceFee < 0 {
		return fmt.Errorf("fees cannot be negative")
	}
	if config.Payment.MaxReceiptBytes <= 0 {
		return fmt.Errorf("max receipt size must be positive")
	}

	if config.MockServer.TokenExpiration <= 0 {
		return fmt.Errorf("mock server token expiration must be positive")
	}

	return nil
}

// userDir is where config and session live, falling back to the working
// directory when the platform has no config home
func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(dir, appDirName)
}
