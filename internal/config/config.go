package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings of the eap command.
type Config struct {
	DBPath      string `validate:"required"`
	User        string `validate:"max=64"`
	LogUseCases bool
	LogLevel    string `validate:"required,oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the settings used when nothing is configured. The
// database lives under ~/.eap.
func DefaultConfig() Config {
	dbPath := "eap.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".eap", "eap.db")
	}
	return Config{
		DBPath:   dbPath,
		User:     os.Getenv("USER"),
		LogLevel: "info",
	}
}

// Load reads the given dotenv files (".env" when none are named) into the
// environment, then builds the configuration from EAP_* variables over the
// defaults. Missing dotenv files are skipped. Variables already set in the
// environment win over dotenv values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if v := os.Getenv("EAP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("EAP_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("EAP_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("EAP_LOG_USE_CASES: %w", err)
		}
		cfg.LogUseCases = b
	}
	if v := os.Getenv("EAP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := validate.Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Session identifies the acting user for operations that record authorship.
func (c Config) Session() domain.Session {
	return domain.Session{UserID: c.User}
}
