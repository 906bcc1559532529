package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, as in TAGWM_TERMINAL or
// TAGWM_BAR_HEIGHT.
const EnvPrefix = "TAGWM"

// Load reads configuration from path. If path is empty, uses
// DefaultConfigPath. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()
	defaultBindings := cfg.Bindings
	defaultTags := cfg.Tags
	defaultLayouts := cfg.Layouts
	// Lists replace their defaults rather than merging into them.
	cfg.Bindings, cfg.Tags, cfg.Layouts = nil, nil, nil

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("terminal", cfg.Terminal)
	v.SetDefault("launcher", cfg.Launcher)
	v.SetDefault("tags", defaultTags)
	v.SetDefault("layouts", defaultLayouts)
	v.SetDefault("main_count", cfg.MainCount)
	v.SetDefault("main_ratio", cfg.MainRatio)
	v.SetDefault("bar.enabled", cfg.Bar.Enabled)
	v.SetDefault("bar.height", cfg.Bar.Height)
	v.SetDefault("bar.font", cfg.Bar.Font)
	v.SetDefault("bar.font_size", cfg.Bar.FontSize)
	v.SetDefault("bar.font_dir", cfg.Bar.FontDir)
	v.SetDefault("bar.foreground", cfg.Bar.Foreground)
	v.SetDefault("bar.background", cfg.Bar.Background)
	v.SetDefault("bar.highlight", cfg.Bar.Highlight)
	v.SetDefault("bar.empty", cfg.Bar.Empty)
	v.SetDefault("bar.padding.h", cfg.Bar.Padding.H)
	v.SetDefault("bar.padding.v", cfg.Bar.Padding.V)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if len(cfg.Bindings) == 0 {
		cfg.Bindings = defaultBindings
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = defaultTags
	}
	if len(cfg.Layouts) == 0 {
		cfg.Layouts = defaultLayouts
	}
	cfg.Bar.FontDir = os.ExpandEnv(cfg.Bar.FontDir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Dump writes cfg as YAML that Load accepts.
func Dump(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
