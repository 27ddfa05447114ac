package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/philipp01105/hostlog/bridge"
	"github.com/philipp01105/hostlog/formatter"
	"github.com/philipp01105/hostlog/host"
	"github.com/philipp01105/hostlog/logger"
)

// Delivery modes
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// EnvPrefix is prepended to every key when reading the environment.
const EnvPrefix = "HOSTLOG"

// Config holds the settings needed to install a bridge.
type Config struct {
	// Channel is the host channel records are delivered to.
	Channel string `mapstructure:"channel"`
	// Mode selects SyncBridge ("sync") or AsyncBridge ("async").
	Mode string `mapstructure:"mode"`
	// LockOSThread pins the async worker to one OS thread.
	LockOSThread bool `mapstructure:"lock_os_thread"`
	// DrainTimeout bounds how long Close waits for queued records.
	DrainTimeout time.Duration `mapstructure:"drain_timeout"`
	// Format is the message format of the default logger.
	Format string `mapstructure:"format"`
	// IncludeCaller adds "[file:line]" to messages of the default logger.
	IncludeCaller bool `mapstructure:"include_caller"`
}

// ValidationError describes a single invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Channel:      "app",
		Mode:         ModeSync,
		DrainTimeout: 5 * time.Second,
		Format:       FormatText,
	}
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("channel", defaults.Channel)
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("lock_os_thread", defaults.LockOSThread)
	v.SetDefault("drain_timeout", defaults.DrainTimeout)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("include_caller", defaults.IncludeCaller)
}

// Load reads settings from the file at path (skipped when path is empty)
// and the environment, then validates them. Environment values win over
// the file.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Mode = strings.ToLower(cfg.Mode)
	cfg.Format = strings.ToLower(cfg.Format)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns every invalid setting, combined with multierr.
func (c Config) Validate() error {
	var err error
	if c.Channel == "" {
		err = multierr.Append(err, ValidationError{Field: "channel", Value: c.Channel, Message: "must not be empty"})
	}
	if c.Mode != ModeSync && c.Mode != ModeAsync {
		err = multierr.Append(err, ValidationError{Field: "mode", Value: c.Mode, Message: "must be sync or async"})
	}
	if c.DrainTimeout < 0 {
		err = multierr.Append(err, ValidationError{Field: "drain_timeout", Value: c.DrainTimeout, Message: "must not be negative"})
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		err = multierr.Append(err, ValidationError{Field: "format", Value: c.Format, Message: "must be text or json"})
	}
	if c.LockOSThread && c.Mode == ModeSync {
		err = multierr.Append(err, ValidationError{Field: "lock_os_thread", Value: c.LockOSThread, Message: "only applies to async mode"})
	}
	return err
}

// BridgeConfig returns the bridge settings. The gate is left unset so the
// process-wide gate is used.
func (c Config) BridgeConfig() bridge.Config {
	return bridge.Config{
		LockOSThread: c.LockOSThread,
		DrainTimeout: c.DrainTimeout,
	}
}

// Formatter returns the formatter selected by Format.
func (c Config) Formatter() formatter.Formatter {
	fc := formatter.Config{IncludeCaller: c.IncludeCaller}
	if c.Format == FormatJSON {
		return formatter.NewJSONFormatter(fc)
	}
	return formatter.NewTextFormatter(fc)
}

// Logger builds a logger for sink using the configured format.
func (c Config) Logger(sink bridge.Sink) *logger.Logger {
	return logger.NewBuilder().
		WithSink(sink).
		WithFormatter(c.Formatter()).
		WithCaller(c.IncludeCaller).
		Build()
}

// Install validates c, installs the process-wide bridge for fac and points
// the default logger at it.
func (c Config) Install(fac host.Facility) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var err error
	if c.Mode == ModeAsync {
		err = bridge.InstallAsync(fac, c.Channel, c.BridgeConfig())
	} else {
		err = bridge.InstallSync(fac, c.Channel, c.BridgeConfig())
	}
	if err != nil {
		return err
	}

	logger.SetDefault(c.Logger(bridge.Global()))
	return nil
}
