package wm

import (
	"fmt"
	"math"
	"slices"
)

const (
	LayoutMainStack = "main-stack"
	LayoutMonocle   = "monocle"

	DefaultMainCount = 1
	DefaultMainRatio = 0.6

	mainRatioStep = 0.05
	minMainRatio  = 0.1
	maxMainRatio  = 0.9
)

// Options configure a State.
type Options struct {
	// Tags are the workspace tags, in order. They must be unique and
	// non-empty.
	Tags []string
	// Layouts are cycled through by CycleLayout. Empty means main-stack
	// then monocle.
	Layouts []string
	// MainCount and MainRatio seed the main-stack parameters. Zero values
	// mean DefaultMainCount and DefaultMainRatio.
	MainCount int
	MainRatio float64

	// OnWorkspaceChange is called after the focused tag changes.
	OnWorkspaceChange func(prev, next string)
	// OnClientsChanged is called after clients are added, removed or moved
	// between tags.
	OnClientsChanged func()
	// OnKill is asked to close a client. The client stays managed until
	// Remove is called, which is how an X11 host learns the window went
	// away. If OnKill is nil the client is removed immediately.
	OnKill func(ClientID) error
}

type space struct {
	clients []ClientID
	focus   int
}

func (s *space) focused() (ClientID, bool) {
	if len(s.clients) == 0 {
		return 0, false
	}
	return s.clients[s.focus], true
}

// State is an in-memory window manager model. It is not safe for
// concurrent use; an event loop owns it.
type State struct {
	opts      Options
	tags      []string
	index     map[string]int
	spaces    []space
	focused   int
	previous  int
	layouts   []string
	layout    int
	mainCount int
	mainRatio float64
	// fullscreen is the fullscreen client, or zero.
	fullscreen ClientID
	running    bool
}

var _ Handle = (*State)(nil)

// NewState returns a running State focused on the first tag.
func NewState(o Options) (*State, error) {
	if len(o.Tags) == 0 {
		return nil, ErrNoTags
	}
	s := &State{
		opts:      o,
		tags:      slices.Clone(o.Tags),
		index:     make(map[string]int, len(o.Tags)),
		spaces:    make([]space, len(o.Tags)),
		layouts:   slices.Clone(o.Layouts),
		mainCount: o.MainCount,
		mainRatio: o.MainRatio,
		running:   true,
	}
	for i, t := range s.tags {
		if t == "" {
			return nil, fmt.Errorf("wm: tag %d is empty", i)
		}
		if _, dup := s.index[t]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, t)
		}
		s.index[t] = i
	}
	if len(s.layouts) == 0 {
		s.layouts = []string{LayoutMainStack, LayoutMonocle}
	}
	if s.mainCount <= 0 {
		s.mainCount = DefaultMainCount
	}
	if s.mainRatio <= 0 {
		s.mainRatio = DefaultMainRatio
	}
	return s, nil
}

func (s *State) Tags() []string     { return slices.Clone(s.tags) }
func (s *State) FocusedTag() string { return s.tags[s.focused] }
func (s *State) Layout() string     { return s.layouts[s.layout] }
func (s *State) MainCount() int     { return s.mainCount }
func (s *State) MainRatio() float64 { return s.mainRatio }
func (s *State) Running() bool      { return s.running }

// Fullscreen returns the fullscreen client, if any.
func (s *State) Fullscreen() (ClientID, bool) {
	return s.fullscreen, s.fullscreen != 0
}

func (s *State) Clients(tag string) []ClientID {
	i, ok := s.index[tag]
	if !ok {
		return nil
	}
	return slices.Clone(s.spaces[i].clients)
}

// FocusedClient returns the focused client on the focused tag.
func (s *State) FocusedClient() (ClientID, bool) {
	return s.spaces[s.focused].focused()
}

// TagOf returns the tag holding id.
func (s *State) TagOf(id ClientID) (string, bool) {
	for i := range s.spaces {
		if slices.Contains(s.spaces[i].clients, id) {
			return s.tags[i], true
		}
	}
	return "", false
}

// Add manages a new client on the focused tag, just after the focused
// client, and focuses it. Adding a managed client is a no-op.
func (s *State) Add(id ClientID) {
	if _, ok := s.TagOf(id); ok {
		return
	}
	sp := &s.spaces[s.focused]
	at := 0
	if len(sp.clients) != 0 {
		at = sp.focus + 1
	}
	sp.clients = slices.Insert(sp.clients, at, id)
	sp.focus = at
	s.clientsChanged()
}

// Remove forgets a client. It reports whether the client was managed.
func (s *State) Remove(id ClientID) bool {
	for i := range s.spaces {
		sp := &s.spaces[i]
		j := slices.Index(sp.clients, id)
		if j < 0 {
			continue
		}
		sp.clients = slices.Delete(sp.clients, j, j+1)
		if sp.focus > j || sp.focus >= len(sp.clients) {
			sp.focus = max(sp.focus-1, 0)
		}
		if s.fullscreen == id {
			s.fullscreen = 0
		}
		s.clientsChanged()
		return true
	}
	return false
}

// Focus focuses a client on the focused tag, such as the one under the
// pointer. Clients on other tags are ignored.
func (s *State) Focus(id ClientID) {
	sp := &s.spaces[s.focused]
	if j := slices.Index(sp.clients, id); j >= 0 {
		sp.focus = j
	}
}

func (s *State) FocusTag(tag string) error {
	i, ok := s.index[tag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	s.focusIndex(i)
	return nil
}

func (s *State) ToggleTag() error {
	s.focusIndex(s.previous)
	return nil
}

func (s *State) CycleTag(d Direction) error {
	s.focusIndex(step(s.focused, len(s.tags), d))
	return nil
}

func (s *State) focusIndex(i int) {
	if i == s.focused {
		return
	}
	prev := s.tags[s.focused]
	s.previous, s.focused = s.focused, i
	s.fullscreen = 0
	if s.opts.OnWorkspaceChange != nil {
		s.opts.OnWorkspaceChange(prev, s.tags[i])
	}
}

func (s *State) MoveFocusedClient(tag string) error {
	i, ok := s.index[tag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	id, ok := s.FocusedClient()
	if !ok {
		return ErrNoFocusedClient
	}
	if i == s.focused {
		return nil
	}
	sp := &s.spaces[s.focused]
	sp.clients = slices.Delete(sp.clients, sp.focus, sp.focus+1)
	if sp.focus >= len(sp.clients) {
		sp.focus = max(len(sp.clients)-1, 0)
	}
	if s.fullscreen == id {
		s.fullscreen = 0
	}
	dst := &s.spaces[i]
	dst.clients = append(dst.clients, id)
	dst.focus = len(dst.clients) - 1
	s.clientsChanged()
	return nil
}

func (s *State) CycleClient(d Direction) error {
	sp := &s.spaces[s.focused]
	if len(sp.clients) == 0 {
		return ErrNoFocusedClient
	}
	sp.focus = step(sp.focus, len(sp.clients), d)
	return nil
}

// DragClient swaps the focused client with its neighbor in direction d,
// wrapping at the ends. Focus stays with the dragged client.
func (s *State) DragClient(d Direction) error {
	sp := &s.spaces[s.focused]
	if len(sp.clients) == 0 {
		return ErrNoFocusedClient
	}
	j := step(sp.focus, len(sp.clients), d)
	sp.clients[sp.focus], sp.clients[j] = sp.clients[j], sp.clients[sp.focus]
	sp.focus = j
	return nil
}

func (s *State) ToggleFullscreen() error {
	id, ok := s.FocusedClient()
	if !ok {
		return ErrNoFocusedClient
	}
	if s.fullscreen == id {
		s.fullscreen = 0
	} else {
		s.fullscreen = id
	}
	return nil
}

func (s *State) KillFocused() error {
	id, ok := s.FocusedClient()
	if !ok {
		return ErrNoFocusedClient
	}
	if s.opts.OnKill == nil {
		s.Remove(id)
		return nil
	}
	return s.opts.OnKill(id)
}

func (s *State) CycleLayout(d Direction) error {
	s.layout = step(s.layout, len(s.layouts), d)
	return nil
}

func (s *State) AdjustMainCount(d Delta) error {
	if d == More {
		s.mainCount++
	} else if s.mainCount > 0 {
		s.mainCount--
	}
	return nil
}

func (s *State) AdjustMainRatio(d Delta) error {
	r := s.mainRatio + mainRatioStep
	if d == Less {
		r = s.mainRatio - mainRatioStep
	}
	// Round to hundredths so repeated steps do not drift.
	r = math.Round(r*100) / 100
	s.mainRatio = min(max(r, minMainRatio), maxMainRatio)
	return nil
}

func (s *State) Exit() {
	s.running = false
}

func (s *State) clientsChanged() {
	if s.opts.OnClientsChanged != nil {
		s.opts.OnClientsChanged()
	}
}

func step(i, n int, d Direction) int {
	if n == 0 {
		return 0
	}
	if d == Backward {
		return (i + n - 1) % n
	}
	return (i + 1) % n
}
