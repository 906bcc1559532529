// Package wm defines the capability set that key bindings and hooks use to
// drive a window manager, and State, an in-memory implementation of it.
package wm

import "errors"

var (
	ErrUnknownTag      = errors.New("wm: unknown tag")
	ErrNoFocusedClient = errors.New("wm: no focused client")
	ErrNoTags          = errors.New("wm: no tags")
	ErrDuplicateTag    = errors.New("wm: duplicate tag")
)

// Direction is a traversal order.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Delta is the sign of an adjustment.
type Delta int

const (
	More Delta = iota
	Less
)

func (d Delta) String() string {
	if d == Less {
		return "less"
	}
	return "more"
}

// ClientID identifies a managed client window. The X11 host uses the X
// window ID.
type ClientID uint32

// Handle is what a binding or a hook may do to the window manager. It is
// only valid for the duration of one callback.
type Handle interface {
	// Tags returns the workspace tags in display order.
	Tags() []string
	FocusedTag() string
	// Clients returns the clients on tag, in stacking order.
	Clients(tag string) []ClientID

	FocusTag(tag string) error
	ToggleTag() error
	CycleTag(d Direction) error
	MoveFocusedClient(tag string) error

	CycleClient(d Direction) error
	DragClient(d Direction) error
	ToggleFullscreen() error
	KillFocused() error

	CycleLayout(d Direction) error
	AdjustMainCount(d Delta) error
	AdjustMainRatio(d Delta) error

	// Exit asks the event loop to stop after the current event.
	Exit()
}
