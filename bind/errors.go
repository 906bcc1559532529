package bind

import (
	"errors"
	"fmt"
)

// ErrNoAction is returned by Build for an entry without an action.
var ErrNoAction = errors.New("bind: binding has no action")

// MalformedChordError reports a chord pattern that does not parse.
type MalformedChordError struct {
	// Index is the entry's position in the binding list, or -1 when the
	// chord was parsed on its own.
	Index   int
	Pattern string
	Reason  string
}

func (e *MalformedChordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("bind: malformed chord %q: %s", e.Pattern, e.Reason)
	}
	return fmt.Sprintf("bind: binding %d: malformed chord %q: %s", e.Index, e.Pattern, e.Reason)
}

// TemplateArityError reports a placeholder without a tag list, a tag list
// without a placeholder, or more than one placeholder.
type TemplateArityError struct {
	Index        int
	Pattern      string
	Placeholders int
	Tags         int
}

func (e *TemplateArityError) Error() string {
	var what string
	switch {
	case e.Placeholders > 1:
		what = fmt.Sprintf("%d placeholders, at most one is allowed", e.Placeholders)
	case e.Placeholders == 1:
		what = "placeholder " + Placeholder + " without a tag list"
	default:
		what = fmt.Sprintf("tag list of %d without a %s placeholder", e.Tags, Placeholder)
	}
	return fmt.Sprintf("bind: binding %d: chord %q: %s", e.Index, e.Pattern, what)
}

// SpawnError reports an external command that could not be started.
type SpawnError struct {
	Command string
	Args    []string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("bind: could not start %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// InternalActionError reports an operation the window manager refused,
// or one that panicked.
type InternalActionError struct {
	Action Action
	Err    error
}

func (e *InternalActionError) Error() string {
	return fmt.Sprintf("bind: %s: %v", e.Action, e.Err)
}

func (e *InternalActionError) Unwrap() error { return e.Err }
