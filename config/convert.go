package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/nigeltao/tagwm/bar"
	"github.com/nigeltao/tagwm/bind"
	"github.com/nigeltao/tagwm/style"
	"github.com/nigeltao/tagwm/wm"
)

// Validate checks the parts of cfg that are not checked when it is turned
// into a key table or a bar.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Tags))
	for _, t := range c.Tags {
		if t == "" {
			return errors.New("config: tags: empty tag")
		}
		if seen[t] {
			return fmt.Errorf("config: tags: duplicate tag %q", t)
		}
		seen[t] = true
	}
	if c.MainRatio < 0 || c.MainRatio >= 1 {
		return fmt.Errorf("config: main_ratio %v is not between 0 and 1", c.MainRatio)
	}
	if c.MainCount < 0 {
		return fmt.Errorf("config: main_count %d is negative", c.MainCount)
	}
	if !c.Bar.Enabled {
		return nil
	}
	if c.Bar.Height <= 0 {
		return fmt.Errorf("config: bar.height %d must be positive", c.Bar.Height)
	}
	if c.Bar.Padding.H < 0 || c.Bar.Padding.V < 0 {
		return fmt.Errorf("config: bar.padding %v,%v must not be negative", c.Bar.Padding.H, c.Bar.Padding.V)
	}
	return nil
}

// StateOptions returns the window manager options cfg describes. The
// callbacks are left for the host to fill in.
func (c Config) StateOptions() wm.Options {
	return wm.Options{
		Tags:      append([]string(nil), c.Tags...),
		Layouts:   append([]string(nil), c.Layouts...),
		MainCount: c.MainCount,
		MainRatio: c.MainRatio,
	}
}

// Entries turns the bindings into table entries without parsing chords.
func (c Config) Entries() ([]bind.Entry, error) {
	entries := make([]bind.Entry, 0, len(c.Bindings))
	for i, b := range c.Bindings {
		a, err := c.action(b)
		if err != nil {
			return nil, fmt.Errorf("config: binding %d (%q): %w", i, b.Keys, err)
		}
		e := bind.Entry{Pattern: b.Keys, Action: a}
		if b.ForEachTag {
			e.Tags = c.Tags
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// KeyTable builds the key binding table.
func (c Config) KeyTable() (*bind.Table, error) {
	entries, err := c.Entries()
	if err != nil {
		return nil, err
	}
	t, err := bind.Build(entries)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return t, nil
}

func (c Config) action(b Binding) (bind.Action, error) {
	switch {
	case len(b.Run) != 0 && b.Do != "":
		return bind.Action{}, errors.New("both run and do are set")
	case len(b.Run) != 0:
		args := make([]string, len(b.Run))
		for i, s := range b.Run {
			args[i] = os.Expand(s, c.expandVar)
		}
		if args[0] == "" {
			return bind.Action{}, fmt.Errorf("run %q expands to an empty command", b.Run[0])
		}
		return bind.RunExternal(args[0], args[1:]...), nil
	case b.Do == "":
		return bind.Action{}, errors.New("one of run or do is required")
	}

	op, err := bind.ParseOp(b.Do)
	if err != nil {
		return bind.Action{}, err
	}
	var param any
	switch op.Param() {
	case bind.ParamDirection:
		if param, err = bind.ParseDirection(b.Arg); err != nil {
			return bind.Action{}, err
		}
	case bind.ParamDelta:
		if param, err = bind.ParseDelta(b.Arg); err != nil {
			return bind.Action{}, err
		}
	case bind.ParamTag:
		tag := b.Arg
		if tag == "" && b.ForEachTag {
			tag = bind.Placeholder
		}
		param = tag
	default:
		if b.Arg != "" {
			return bind.Action{}, fmt.Errorf("%s takes no arg, got %q", op, b.Arg)
		}
	}
	return bind.RunInternal(op, param)
}

func (c Config) expandVar(name string) string {
	switch name {
	case "terminal":
		return c.Terminal
	case "launcher":
		return c.Launcher
	}
	return os.Getenv(name)
}

// StatusBar returns the bar configuration. It fails on a bad colour or
// font size.
func (c Config) StatusBar() (bar.Config, error) {
	b := c.Bar
	fg, err := style.ParseHex(b.Foreground)
	if err != nil {
		return bar.Config{}, fmt.Errorf("config: bar.foreground: %w", err)
	}
	var bg *style.Color
	if b.Background != "" {
		col, err := style.ParseHex(b.Background)
		if err != nil {
			return bar.Config{}, fmt.Errorf("config: bar.background: %w", err)
		}
		bg = &col
	}
	highlight, err := style.ParseHex(b.Highlight)
	if err != nil {
		return bar.Config{}, fmt.Errorf("config: bar.highlight: %w", err)
	}
	empty, err := style.ParseHex(b.Empty)
	if err != nil {
		return bar.Config{}, fmt.Errorf("config: bar.empty: %w", err)
	}
	st, err := style.New(b.Font, b.FontSize, fg, bg, style.Padding{H: b.Padding.H, V: b.Padding.V})
	if err != nil {
		return bar.Config{}, fmt.Errorf("config: bar: %w", err)
	}
	return bar.Config{
		Height:    b.Height,
		Style:     st,
		Highlight: highlight,
		Empty:     empty,
		Tags:      append([]string(nil), c.Tags...),
	}, nil
}
