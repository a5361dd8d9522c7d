package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/spf13/viper"
)

// Config holds the settings for the gantt binary.
type Config struct {
	DBPath       string `mapstructure:"db_path"`
	UserID       string `mapstructure:"user_id"`
	ResourceKind string `mapstructure:"resource_kind"`
	LogUseCases  bool   `mapstructure:"log_use_cases"`
	LogLevel     string `mapstructure:"log_level"`
}

// DefaultConfig returns the built-in defaults. The database lives under
// ~/.gantt unless the home directory cannot be determined.
func DefaultConfig() Config {
	dbPath := filepath.Join(".gantt", "gantt.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".gantt", "gantt.db")
	}
	return Config{
		DBPath:       dbPath,
		UserID:       defaultUser(),
		ResourceKind: string(domain.ResourceTasks),
		LogUseCases:  false,
		LogLevel:     "info",
	}
}

func defaultUser() string {
	return domain.CoalesceStr(os.Getenv("USER"), os.Getenv("USERNAME"), "local")
}

// LoadConfig layers, lowest to highest precedence: defaults, the global
// file ~/.gantt/config.yaml, the project file ./.gantt/config.yaml, then
// GANTT_* environment variables. Missing files are skipped.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{GlobalConfigPath(), ProjectConfigPath()} {
		if path == "" {
			continue
		}
		if err := loadFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTT_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GANTT_USER"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("GANTT_KIND"); v != "" {
		cfg.ResourceKind = v
	}
	if v := os.Getenv("GANTT_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GANTT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate rejects settings the rest of the program cannot use.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.UserID == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	if _, err := domain.ParseResourceKind(c.ResourceKind); err != nil {
		return fmt.Errorf("resource_kind: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Kind returns the configured resource kind. Call after Validate.
func (c Config) Kind() domain.ResourceKind {
	return domain.ResourceKind(c.ResourceKind)
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: invalid value %q", c.LogLevel)
	}
	return lvl, nil
}

// GlobalConfigPath returns the per-user config file path.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gantt", "config.yaml")
}

// ProjectConfigPath returns the config file path in the working directory.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".gantt", "config.yaml")
}
