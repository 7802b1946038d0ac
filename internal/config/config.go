package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"seal-editor/internal/logger"
	"seal-editor/internal/theme"
)

const (
	AppName    = "Seal Editor"
	AppID      = "io.github.sealeditor"
	AppVersion = "1.2.0"

	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	MinWindowWidth      = 200
	MinWindowHeight     = 150
)

// Config is the runtime configuration. Nothing is persisted; values come
// from defaults, the environment and command-line flags, in that order.
type Config struct {
	LogLevel     logger.LogLevel
	JSONLogs     bool
	WindowWidth  float32
	WindowHeight float32
	FontSize     float32
	WatchFiles   bool
}

func DefaultConfig() Config {
	return Config{
		LogLevel:     logger.InfoLevel,
		JSONLogs:     false,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		FontSize:     theme.DefaultFontSize,
		WatchFiles:   true,
	}
}

// FromEnv applies SEAL_LOG_LEVEL, DEBUG, SEAL_JSON_LOGS and SEAL_WATCH_FILES
// on top of the defaults.
func FromEnv() Config {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if level, ok := logger.ParseLevel(getenv("SEAL_LOG_LEVEL")); ok {
		cfg.LogLevel = level
	} else if getenv("DEBUG") == "1" {
		cfg.LogLevel = logger.DebugLevel
	}

	if v, err := strconv.ParseBool(getenv("SEAL_JSON_LOGS")); err == nil {
		cfg.JSONLogs = v
	}

	if v, err := strconv.ParseBool(getenv("SEAL_WATCH_FILES")); err == nil {
		cfg.WatchFiles = v
	}

	return cfg
}

// SetLogLevel parses name into the config's level.
func (c *Config) SetLogLevel(name string) error {
	level, ok := logger.ParseLevel(name)
	if !ok {
		return errors.Errorf("unknown log level %q (want debug, info, warn or error)", name)
	}
	c.LogLevel = level
	return nil
}

func (c Config) Validate() error {
	if c.WindowWidth < MinWindowWidth || c.WindowHeight < MinWindowHeight {
		return errors.Errorf("window size %.0fx%.0f is below the minimum %dx%d",
			c.WindowWidth, c.WindowHeight, MinWindowWidth, MinWindowHeight)
	}
	if c.FontSize < theme.MinFontSize || c.FontSize > theme.MaxFontSize {
		return errors.Errorf("font size %.0f outside [%.0f, %.0f]", c.FontSize, theme.MinFontSize, theme.MaxFontSize)
	}
	if c.LogLevel < logger.DebugLevel || c.LogLevel > logger.ErrorLevel {
		return errors.Errorf("invalid log level %d", c.LogLevel)
	}
	return nil
}
