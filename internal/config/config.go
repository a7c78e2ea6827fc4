package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"dua/internal/errors"
	"dua/pkg/types"
)

// Config represents the application configuration structure.
// It holds the scan settings, how results are displayed, and logging.
type Config struct {
	Walk struct {
		Threads          int           `yaml:"threads"`           // Directory readers, 0 = one per CPU
		Ignore           []string      `yaml:"ignore"`            // Glob patterns of paths to skip
		ProgressInterval time.Duration `yaml:"progress_interval"` // Redraw period while scanning
	} `yaml:"walk"`
	Display struct {
		ByteFormat string `yaml:"byte_format"` // metric, binary or bytes
		Color      string `yaml:"color"`       // auto, none or terminal
		Sorting    string `yaml:"sorting"`     // name, size_ascending or size_descending
	} `yaml:"display"`
	Log struct {
		Debug bool   `yaml:"debug"` // Log debug messages
		File  string `yaml:"file"`  // Log to this file instead of stderr
	} `yaml:"log"`
}

// DefaultPath returns ~/.config/dua/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("cannot locate home directory", "", errors.ConfigNotFound, err)
	}
	return filepath.Join(home, ".config", "dua", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/dua/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if tempCfg.Walk.Threads != 0 {
		cfg.Walk.Threads = tempCfg.Walk.Threads
	}
	if len(tempCfg.Walk.Ignore) > 0 {
		cfg.Walk.Ignore = tempCfg.Walk.Ignore
	}
	if tempCfg.Walk.ProgressInterval != 0 {
		cfg.Walk.ProgressInterval = tempCfg.Walk.ProgressInterval
	}
	if tempCfg.Display.ByteFormat != "" {
		cfg.Display.ByteFormat = tempCfg.Display.ByteFormat
	}
	if tempCfg.Display.Color != "" {
		cfg.Display.Color = tempCfg.Display.Color
	}
	if tempCfg.Display.Sorting != "" {
		cfg.Display.Sorting = tempCfg.Display.Sorting
	}
	cfg.Log.Debug = tempCfg.Log.Debug
	if tempCfg.Log.File != "" {
		cfg.Log.File = tempCfg.Log.File
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Walk.Threads = 0
	cfg.Walk.Ignore = []string{}
	cfg.Walk.ProgressInterval = types.DefaultProgressInterval

	cfg.Display.ByteFormat = types.Metric.String()
	cfg.Display.Color = "auto"
	cfg.Display.Sorting = types.SortByName.String()

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if c.Walk.Threads < 0 {
		return errors.NewConfigError("threads must be >= 0", "walk.threads", errors.InvalidConfig, nil)
	}
	if c.Walk.ProgressInterval < 0 {
		return errors.NewConfigError("progress interval must be >= 0", "walk.progress_interval", errors.InvalidConfig, nil)
	}
	for i, pattern := range c.Walk.Ignore {
		if pattern == "" {
			return errors.NewConfigError("ignore pattern is empty", "walk.ignore", errors.InvalidConfig,
				errors.Newf("pattern %d", i))
		}
	}

	if _, err := types.ParseByteFormat(c.Display.ByteFormat); err != nil {
		return errors.NewConfigError("invalid setting", "display.byte_format", errors.InvalidConfig, err)
	}
	if _, err := types.ParseColor(c.Display.Color, false); err != nil {
		return errors.NewConfigError("invalid setting", "display.color", errors.InvalidConfig, err)
	}
	if _, err := types.ParseSortMode(c.Display.Sorting); err != nil {
		return errors.NewConfigError("invalid setting", "display.sorting", errors.InvalidConfig, err)
	}

	return nil
}

// WalkOptions converts the configuration into scan options. isTerminal
// resolves the "auto" color mode.
func (c *Config) WalkOptions(isTerminal bool) (types.WalkOptions, error) {
	if err := c.Validate(); err != nil {
		return types.WalkOptions{}, err
	}

	opts := types.DefaultWalkOptions()
	opts.Threads = c.Walk.Threads
	opts.Ignore = append([]string(nil), c.Walk.Ignore...)
	if c.Walk.ProgressInterval > 0 {
		opts.ProgressInterval = c.Walk.ProgressInterval
	}

	// Validate has already accepted every value
	opts.ByteFormat, _ = types.ParseByteFormat(c.Display.ByteFormat)
	opts.Color, _ = types.ParseColor(c.Display.Color, isTerminal)
	opts.Sorting, _ = types.ParseSortMode(c.Display.Sorting)

	return opts, nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
