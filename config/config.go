// Package config is the user-facing configuration: programs, tags, bar
// colours and the key binding table.
package config

import (
	"os"
	"path/filepath"

	"github.com/nigeltao/tagwm/wm"
)

// Config is the top-level configuration.
type Config struct {
	Terminal  string    `mapstructure:"terminal" yaml:"terminal"`
	Launcher  string    `mapstructure:"launcher" yaml:"launcher"`
	Tags      []string  `mapstructure:"tags" yaml:"tags"`
	Layouts   []string  `mapstructure:"layouts" yaml:"layouts"`
	MainCount int       `mapstructure:"main_count" yaml:"main_count"`
	MainRatio float64   `mapstructure:"main_ratio" yaml:"main_ratio"`
	Bar       BarConfig `mapstructure:"bar" yaml:"bar"`
	Bindings  []Binding `mapstructure:"bindings" yaml:"bindings"`
}

// BarConfig configures the status bar. Colours are #rrggbb or #rrggbbaa.
// An empty Background paints no background.
type BarConfig struct {
	Enabled    bool          `mapstructure:"enabled" yaml:"enabled"`
	Height     int           `mapstructure:"height" yaml:"height"`
	Font       string        `mapstructure:"font" yaml:"font"`
	FontSize   int           `mapstructure:"font_size" yaml:"font_size"`
	FontDir    string        `mapstructure:"font_dir" yaml:"font_dir"`
	Foreground string        `mapstructure:"foreground" yaml:"foreground"`
	Background string        `mapstructure:"background" yaml:"background"`
	Highlight  string        `mapstructure:"highlight" yaml:"highlight"`
	Empty      string        `mapstructure:"empty" yaml:"empty"`
	Padding    PaddingConfig `mapstructure:"padding" yaml:"padding"`
}

// PaddingConfig is the space around each tag label, in pixels.
type PaddingConfig struct {
	H float64 `mapstructure:"h" yaml:"h"`
	V float64 `mapstructure:"v" yaml:"v"`
}

// Binding is one key binding. Exactly one of Run and Do is set. Run
// arguments may refer to $terminal and $launcher, and to the environment.
// With ForEachTag the binding is repeated for every tag, and "{}" in Keys,
// Run or Arg stands for the tag.
type Binding struct {
	Keys       string   `mapstructure:"keys" yaml:"keys"`
	Run        []string `mapstructure:"run" yaml:"run,omitempty"`
	Do         string   `mapstructure:"do" yaml:"do,omitempty"`
	Arg        string   `mapstructure:"arg" yaml:"arg,omitempty"`
	ForEachTag bool     `mapstructure:"for_each_tag" yaml:"for_each_tag,omitempty"`
}

const (
	DefaultTerminal = "alacritty"
	DefaultLauncher = "dmenu_run"
)

// DefaultTags are the workspace tags "1" to "9".
var DefaultTags = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

// DefaultBindings is the stock key table.
func DefaultBindings() []Binding {
	return []Binding{
		{Keys: "M-d", Run: []string{"$launcher"}},
		{Keys: "M-Return", Run: []string{"$terminal"}},

		{Keys: "M-A-C-Escape", Do: "exit"},

		{Keys: "M-j", Do: "cycle_client", Arg: "forward"},
		{Keys: "M-k", Do: "cycle_client", Arg: "backward"},
		{Keys: "M-S-j", Do: "drag_client", Arg: "forward"},
		{Keys: "M-S-k", Do: "drag_client", Arg: "backward"},
		{Keys: "M-f", Do: "toggle_fullscreen"},
		{Keys: "M-c", Do: "kill_client"},

		{Keys: "M-Tab", Do: "toggle_workspace"},
		{Keys: "M-A-period", Do: "cycle_workspace", Arg: "forward"},
		{Keys: "M-A-comma", Do: "cycle_workspace", Arg: "backward"},

		{Keys: "M-grave", Do: "cycle_layout", Arg: "forward"},
		{Keys: "M-S-grave", Do: "cycle_layout", Arg: "backward"},
		{Keys: "M-A-Up", Do: "adjust_main_count", Arg: "more"},
		{Keys: "M-A-Down", Do: "adjust_main_count", Arg: "less"},
		{Keys: "M-A-Right", Do: "adjust_main_ratio", Arg: "more"},
		{Keys: "M-A-Left", Do: "adjust_main_ratio", Arg: "less"},

		{Keys: "M-{}", Do: "focus_workspace", ForEachTag: true},
		{Keys: "M-S-{}", Do: "client_to_workspace", ForEachTag: true},
	}
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Terminal:  DefaultTerminal,
		Launcher:  DefaultLauncher,
		Tags:      append([]string(nil), DefaultTags...),
		Layouts:   []string{wm.LayoutMainStack, wm.LayoutMonocle},
		MainCount: wm.DefaultMainCount,
		MainRatio: wm.DefaultMainRatio,
		Bar: BarConfig{
			Enabled:    true,
			Height:     18,
			Font:       "mono",
			FontSize:   11,
			FontDir:    defaultFontDir(),
			Foreground: "#ebdbb2ff",
			Background: "#282828ff",
			Highlight:  "#458588ff",
			Empty:      "#3c3836ff",
			Padding:    PaddingConfig{H: 2, V: 2},
		},
		Bindings: DefaultBindings(),
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/tagwm/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tagwm", "config.yaml"), nil
}

func defaultFontDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "fonts")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "fonts")
	}
	return ""
}
