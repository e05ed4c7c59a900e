package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	Theme     ThemeConfig
	Dashboard DashboardConfig
	CORS      CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// APIConfig points the console at the HR API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ThemeConfig struct {
	PreferenceFile string
	PreferDark     bool
}

type DashboardConfig struct {
	// RefreshInterval of zero disables periodic refresh
	RefreshInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file is loaded when
// present, and HRMS_CONFIG_FILE may name a YAML file whose keys (same names
// as the environment variables) supply defaults beneath the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	src := source{}
	if path := os.Getenv("HRMS_CONFIG_FILE"); path != "" {
		overlay, err := readOverlay(path)
		if err != nil {
			return nil, err
		}
		src = overlay
		slog.Debug("Loaded configuration file", "path", path, "keys", len(overlay))
	}

	return src.build()
}

func (src source) build() (*Config, error) {
	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(src.getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      src.getEnv("APP_ENV", "development"),
		LogLevel: src.getEnv("LOG_LEVEL", "info"),
	}

	// HR API configuration
	apiTimeout, err := time.ParseDuration(src.getEnv("API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	config.API = APIConfig{
		BaseURL: strings.TrimRight(src.getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		Timeout: apiTimeout,
	}

	// Theme configuration
	preferDark, err := strconv.ParseBool(src.getEnv("THEME_PREFER_DARK", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid THEME_PREFER_DARK: %w", err)
	}

	config.Theme = ThemeConfig{
		PreferenceFile: src.getEnv("THEME_PREFERENCE_FILE", ".hrms-theme.yaml"),
		PreferDark:     preferDark,
	}

	// Dashboard configuration
	refresh, err := time.ParseDuration(src.getEnv("DASHBOARD_REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_REFRESH_INTERVAL: %w", err)
	}

	config.Dashboard = DashboardConfig{RefreshInterval: refresh}

	config.CORS = CORSConfig{
		AllowedOrigins: src.getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if c.Dashboard.RefreshInterval < 0 {
		return fmt.Errorf("DASHBOARD_REFRESH_INTERVAL must not be negative")
	}
	if c.Theme.PreferenceFile == "" {
		return fmt.Errorf("THEME_PREFERENCE_FILE is required")
	}
	return nil
}

// Addr is the listen address of the console shell
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// source holds values from the optional YAML file.
type source map[string]string

func readOverlay(path string) (source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HRMS_CONFIG_FILE: %w", err)
	}

	var values map[string]interface{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to parse HRMS_CONFIG_FILE: %w", err)
	}

	src := make(source, len(values))
	for key, value := range values {
		switch v := value.(type) {
		case nil:
		case []interface{}:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			src[key] = strings.Join(parts, ",")
		default:
			src[key] = fmt.Sprint(v)
		}
	}
	return src, nil
}

func (src source) getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := src[key]; ok && value != "" {
		return value
	}
	return fallback
}

func (src source) getEnvSlice(env string) []string {
	value := src.getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
