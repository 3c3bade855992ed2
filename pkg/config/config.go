// Package config loads stopwatch settings with the usual precedence:
// flag > environment (STOPWATCH_*) > .stopwatch.yaml > default.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/pkg/logger"
)

const (
	// EnvPrefix is prepended to every environment variable, e.g. STOPWATCH_TICK_INTERVAL.
	EnvPrefix = "STOPWATCH"

	configName = ".stopwatch"
	configType = "yaml"
)

// Configuration keys.
const (
	KeyTickInterval = "tick_interval"
	KeyLogLevel     = "log.level"
	KeyNoColor      = "no_color"
	KeyHeadless     = "headless"
	KeyDuration     = "duration"
	KeyAutostart    = "autostart"
)

// DefaultTickInterval matches the display refresh cadence of the tracker.
const DefaultTickInterval = 200 * time.Millisecond

// Config is the decoded stopwatch configuration.
type Config struct {
	// TickInterval is how often the display refreshes while running.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	Log          Log           `mapstructure:"log"`
	NoColor      bool          `mapstructure:"no_color"`
	// Headless forces the plain logging runner even on a TTY.
	Headless bool `mapstructure:"headless"`
	// Duration stops a headless run after this long. Zero runs until interrupted.
	Duration  time.Duration `mapstructure:"duration"`
	Autostart bool          `mapstructure:"autostart"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers a default for every key so env overrides are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTickInterval, DefaultTickInterval)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyHeadless, false)
	v.SetDefault(KeyDuration, time.Duration(0))
	v.SetDefault(KeyAutostart, false)
}

// Init wires defaults, environment binding and the config file into v.
// A missing .stopwatch.yaml is fine; an explicit configFile that can't be read is not.
func Init(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			logger.Debug("No config file found, using defaults")
			return nil
		}
		return errUtils.Build(errUtils.ErrReadConfig).
			WithExplanation(err.Error()).
			WithContext("file", configFile).
			WithHint("Check that the file exists and is valid YAML").
			Err()
	}

	logger.Debug("Loaded config file", "file", v.ConfigFileUsed())
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errUtils.Build(errUtils.ErrInvalidConfig).
			WithExplanation(err.Error()).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects settings the stopwatch can't run with.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return errUtils.Build(errUtils.ErrInvalidTickInterval).
			WithExplanation("tick_interval must be positive").
			WithContext("tick_interval", c.TickInterval.String()).
			WithHint("Use a value such as 200ms").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	if c.Duration < 0 {
		return errUtils.Build(errUtils.ErrInvalidDuration).
			WithExplanation("duration cannot be negative").
			WithContext("duration", c.Duration.String()).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}
