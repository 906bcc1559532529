// Package bind maps key chords to window manager actions and dispatches
// key presses through that table.
package bind

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Entry is one declarative binding. When Tags is non-empty the entry is a
// template: Pattern must contain Placeholder exactly once, and the entry
// expands to one binding per tag, with the tag substituted into the
// pattern and into the action.
type Entry struct {
	Pattern string
	Action  Action
	Tags    []string
}

// Table is an immutable chord to action mapping.
type Table struct {
	actions map[Chord]Action
}

// Build expands and parses entries in order. A chord bound more than once
// keeps the last binding.
func Build(entries []Entry) (*Table, error) {
	t := &Table{actions: make(map[Chord]Action, len(entries))}
	for i, e := range entries {
		if e.Action.Kind() == KindNone {
			return nil, fmt.Errorf("%w: binding %d: chord %q", ErrNoAction, i, e.Pattern)
		}
		n := strings.Count(e.Pattern, Placeholder)
		if n > 1 || (n == 1) != (len(e.Tags) != 0) {
			return nil, &TemplateArityError{Index: i, Pattern: e.Pattern, Placeholders: n, Tags: len(e.Tags)}
		}
		if n == 0 {
			if err := t.add(i, e.Pattern, e.Action); err != nil {
				return nil, err
			}
			continue
		}
		for _, tag := range e.Tags {
			pattern := strings.Replace(e.Pattern, Placeholder, tag, 1)
			if err := t.add(i, pattern, e.Action.expand(tag)); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t *Table) add(index int, pattern string, a Action) error {
	c, err := ParseChord(pattern)
	if err != nil {
		if me, ok := err.(*MalformedChordError); ok {
			me.Index = index
		}
		return err
	}
	t.actions[c] = a
	return nil
}

// Lookup returns the action bound to c. Lock modifiers in c are ignored.
func (t *Table) Lookup(c Chord) (Action, bool) {
	if t == nil {
		return Action{}, false
	}
	a, ok := t.actions[c.Normalize()]
	return a, ok
}

// Len returns the number of bound chords.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.actions)
}

// Chords returns every bound chord, sorted by key then modifiers.
func (t *Table) Chords() []Chord {
	if t == nil {
		return nil
	}
	cs := make([]Chord, 0, len(t.actions))
	for c := range t.actions {
		cs = append(cs, c)
	}
	slices.SortFunc(cs, func(a, b Chord) int {
		if n := cmp.Compare(a.Key, b.Key); n != 0 {
			return n
		}
		return cmp.Compare(a.Mods, b.Mods)
	})
	return cs
}

// Builder accumulates entries for Build.
type Builder struct {
	entries []Entry
}

// Bind adds a single binding.
func (b *Builder) Bind(pattern string, a Action) *Builder {
	b.entries = append(b.entries, Entry{Pattern: pattern, Action: a})
	return b
}

// MapOver adds a template binding expanded once per tag.
func (b *Builder) MapOver(tags []string, pattern string, a Action) *Builder {
	b.entries = append(b.entries, Entry{Pattern: pattern, Action: a, Tags: slices.Clone(tags)})
	return b
}

// Entries returns the accumulated entries.
func (b *Builder) Entries() []Entry {
	return slices.Clone(b.entries)
}

func (b *Builder) Build() (*Table, error) {
	return Build(b.entries)
}
