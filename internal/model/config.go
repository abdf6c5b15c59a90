package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Roles determine which notification categories the client polls.
const (
	RoleEmployee = "employee"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

// APIConfig holds the connection settings for the marketplace API.
type APIConfig struct {
	// BaseURL is the root URL of the marketplace (e.g., https://api.example.com).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// AccountID is the acting user's marketplace account identifier. It keys
	// both API requests and local viewed-state records.
	AccountID string `mapstructure:"account_id" yaml:"account_id"`

	// BusinessID is the business the account manages. Only business
	// accounts set it.
	BusinessID string `mapstructure:"business_id" yaml:"business_id"`
}

// StoreConfig holds local persistence settings.
type StoreConfig struct {
	// Path is the SQLite database file location.
	Path string `mapstructure:"path" yaml:"path"`

	// ViewedBackend selects where viewed-state lives: "sqlite" (default,
	// device-local) or "redis" (shared across devices).
	ViewedBackend string `mapstructure:"viewed_backend" yaml:"viewed_backend"`

	// RedisAddr, RedisPassword, and RedisDB configure the redis backend.
	RedisAddr     string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" yaml:"redis_db"`
}

// SyncConfig controls the badge refresh loop.
type SyncConfig struct {
	// PollIntervalSec is how often (in seconds) badge counts are recomputed.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// PageSize is the fetch page size for collection requests.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// Categories restricts polling to the listed categories. Empty means
	// every category the configured role can see.
	Categories []string `mapstructure:"categories" yaml:"categories"`
}

// WindowConfig names the week-window bounds for edit operations. Bounds are
// counted in weeks relative to the current week.
type WindowConfig struct {
	ScheduleWeeksBack    int `mapstructure:"schedule_weeks_back" yaml:"schedule_weeks_back"`
	ScheduleWeeksForward int `mapstructure:"schedule_weeks_forward" yaml:"schedule_weeks_forward"`
	HoursWeeksBack       int `mapstructure:"hours_weeks_back" yaml:"hours_weeks_back"`
	HoursWeeksForward    int `mapstructure:"hours_weeks_forward" yaml:"hours_weeks_forward"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig    `mapstructure:"api" yaml:"api"`
	Role    string       `mapstructure:"role" yaml:"role"`
	Store   StoreConfig  `mapstructure:"store" yaml:"store"`
	Sync    SyncConfig   `mapstructure:"sync" yaml:"sync"`
	Windows WindowConfig `mapstructure:"windows" yaml:"windows"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/shiftdesk/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "shiftdesk", "config.yaml")
}

// defaultDBPath returns the default SQLite database location next to the
// config file.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "shiftdesk.db")
	}
	return filepath.Join(home, ".config", "shiftdesk", "shiftdesk.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Role: RoleEmployee,
		Store: StoreConfig{
			Path:          defaultDBPath(),
			ViewedBackend: "sqlite",
		},
		Sync: SyncConfig{
			PollIntervalSec: 5,
			PageSize:        200,
		},
		Windows: WindowConfig{
			ScheduleWeeksBack:    3,
			ScheduleWeeksForward: 1,
			HoursWeeksBack:       2,
			HoursWeeksForward:    0,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("role", RoleEmployee)
	v.SetDefault("store.path", defaultDBPath())
	v.SetDefault("store.viewed_backend", "sqlite")
	v.SetDefault("sync.poll_interval_sec", 5)
	v.SetDefault("sync.page_size", 200)
	v.SetDefault("windows.schedule_weeks_back", 3)
	v.SetDefault("windows.schedule_weeks_forward", 1)
	v.SetDefault("windows.hours_weeks_back", 2)
	v.SetDefault("windows.hours_weeks_forward", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("role", cfg.Role)
	v.Set("store", cfg.Store)
	v.Set("sync", cfg.Sync)
	v.Set("windows", cfg.Windows)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
