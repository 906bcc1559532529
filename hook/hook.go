// Package hook is the lifecycle contract between the window manager and
// its plugins, such as the status bar.
package hook

import (
	"context"
	"fmt"

	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/wm"
)

// Hook observes window manager lifecycle events. Calls are made one at a
// time from the event loop, and the handle must not be kept past the call.
type Hook interface {
	// Startup is called once when the hook is registered. An error drops
	// the hook; the window manager carries on without it.
	Startup(h wm.Handle) error
	WorkspaceChange(h wm.Handle, prev, next string)
	// EventHandled is called after every event the loop processes.
	EventHandled(h wm.Handle)
	Teardown()
}

// ClientObserver is implemented by hooks that want to know when clients
// are added, removed or moved between tags.
type ClientObserver interface {
	ClientsChanged(h wm.Handle)
}

// Named is implemented by hooks that have a name for log messages.
type Named interface {
	Name() string
}

// InitError is returned by Startup when a hook cannot start.
type InitError struct {
	Hook string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("hook %s: init: %v", e.Hook, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// NameOf returns a hook's name, or its type.
func NameOf(h Hook) string {
	if n, ok := h.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}

// Set is the registered hooks, in registration order.
type Set struct {
	hooks []Hook
	log   pslog.Logger
	done  bool
}

// Register starts each hook against h and keeps the ones that started.
func Register(h wm.Handle, log pslog.Logger, hooks ...Hook) *Set {
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	s := &Set{log: log}
	for _, k := range hooks {
		if err := k.Startup(h); err != nil {
			log.Error("hook dropped", "hook", NameOf(k), "err", err)
			continue
		}
		log.Debug("hook started", "hook", NameOf(k))
		s.hooks = append(s.hooks, k)
	}
	return s
}

// Len returns the number of live hooks.
func (s *Set) Len() int {
	if s.done {
		return 0
	}
	return len(s.hooks)
}

func (s *Set) WorkspaceChange(h wm.Handle, prev, next string) {
	if s.done {
		return
	}
	for _, k := range s.hooks {
		k.WorkspaceChange(h, prev, next)
	}
}

func (s *Set) ClientsChanged(h wm.Handle) {
	if s.done {
		return
	}
	for _, k := range s.hooks {
		if o, ok := k.(ClientObserver); ok {
			o.ClientsChanged(h)
		}
	}
}

func (s *Set) EventHandled(h wm.Handle) {
	if s.done {
		return
	}
	for _, k := range s.hooks {
		k.EventHandled(h)
	}
}

// Teardown tears the hooks down in reverse order. Later calls do nothing.
func (s *Set) Teardown() {
	if s.done {
		return
	}
	s.done = true
	for i := len(s.hooks) - 1; i >= 0; i-- {
		s.hooks[i].Teardown()
		s.log.Debug("hook stopped", "hook", NameOf(s.hooks[i]))
	}
}
