package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the audio runtime configuration read from the environment.
type Config struct {
	AssetPath       string        `env:"AUDIO_ASSET_PATH" envDefault:"assets"`
	Manifest        string        `env:"AUDIO_MANIFEST"`
	Formats         []string      `env:"AUDIO_FORMATS" envSeparator:"," envDefault:"wav,mp3,ogg,flac"`
	DefaultDuration time.Duration `env:"AUDIO_DEFAULT_DURATION" envDefault:"1s"`
	SampleRate      int           `env:"AUDIO_SAMPLE_RATE" envDefault:"44100"`
	LoadConcurrency int           `env:"AUDIO_LOAD_CONCURRENCY" envDefault:"4"`
	Watch           bool          `env:"AUDIO_WATCH" envDefault:"false"`
	LogLevel        string        `env:"AUDIO_LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and parses the environment.
func Load(dotenv ...string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(dotenv...)
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.AssetPath == "" {
		return fmt.Errorf("config: AUDIO_ASSET_PATH is empty")
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("config: AUDIO_SAMPLE_RATE must be positive, got %d", c.SampleRate)
	}
	if c.DefaultDuration <= 0 {
		return fmt.Errorf("config: AUDIO_DEFAULT_DURATION must be positive, got %s", c.DefaultDuration)
	}
	if c.LoadConcurrency < 0 {
		return fmt.Errorf("config: AUDIO_LOAD_CONCURRENCY must not be negative, got %d", c.LoadConcurrency)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger returns a text logger on stderr at the given level.
func NewLogger(level string) *slog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
