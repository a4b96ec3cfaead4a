package config

import (
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/paths"
	"github.com/thoreinstein/aibridge/internal/platform/builtin"
)

// EnvPrefix prefixes environment overrides, e.g. AIBRIDGE_BACKUP_RETENTION.
const EnvPrefix = "AIBRIDGE"

// FileName is the config file name searched for, without extension.
const FileName = "config"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// DefaultTargets are the platforms "convert" writes to when no target
	// is given and no terminal is available to ask.
	DefaultTargets []string `mapstructure:"default_targets" yaml:"default_targets"`

	Backup    Backup                      `mapstructure:"backup" yaml:"backup"`
	Platforms map[string]PlatformOverride `mapstructure:"platforms" yaml:"platforms"`
}

// Backup controls the snapshots taken before files are overwritten.
type Backup struct {
	Enabled   bool `mapstructure:"enabled" yaml:"enabled"`
	Retention int  `mapstructure:"retention" yaml:"retention"`
}

// PlatformOverride contains configuration overrides for a specific platform.
type PlatformOverride struct {
	// Disabled hides the platform from detection and conversion.
	Disabled bool `mapstructure:"disabled" yaml:"disabled"`
}

// Dir returns the user config directory, <XDG config>/aibridge.
func Dir() string {
	return paths.AppConfigDir()
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(Dir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("default_targets", d.DefaultTargets)
	viper.SetDefault("backup.enabled", d.Backup.Enabled)
	viper.SetDefault("backup.retention", d.Backup.Retention)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:        1,
		DefaultTargets: []string{},
		Backup: Backup{
			Enabled:   true,
			Retention: 5,
		},
		Platforms: map[string]PlatformOverride{},
	}
}

// Load reads the configuration file and validates it.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults are fine.
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if cfg.Platforms == nil {
		cfg.Platforms = map[string]PlatformOverride{}
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}
	return &cfg, nil
}

// File returns the config file viper loaded, or "" when defaults are in use.
func File() string {
	return viper.ConfigFileUsed()
}

// DefaultFile returns where a user config file is expected.
func DefaultFile() string {
	return filepath.Join(Dir(), FileName+".yaml")
}

// Enabled reports whether name is a built-in platform that is not disabled.
func (c *Config) Enabled(name string) bool {
	if !builtin.IsBuiltin(name) {
		return false
	}
	return !c.Platforms[name].Disabled
}

// EnabledPlatforms returns the built-in platforms that are not disabled,
// in registration order.
func (c *Config) EnabledPlatforms() []string {
	return slices.DeleteFunc(builtin.Names(), func(name string) bool {
		return !c.Enabled(name)
	})
}
