package bind

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nigeltao/tagwm/wm"
)

// Placeholder is replaced by each tag when a binding is mapped over a tag
// list.
const Placeholder = "{}"

// Kind says which variant an Action is.
type Kind int

const (
	KindNone Kind = iota
	KindExternal
	KindInternal
)

// Op is an internal window manager operation.
type Op int

const (
	OpNone Op = iota
	OpExit
	OpCycleClient
	OpDragClient
	OpToggleFullscreen
	OpKillClient
	OpToggleWorkspace
	OpCycleWorkspace
	OpCycleLayout
	OpAdjustMainCount
	OpAdjustMainRatio
	OpFocusWorkspace
	OpClientToWorkspace
	nOps
)

// Param is the kind of parameter an Op takes.
type Param int

const (
	ParamNone Param = iota
	ParamDirection
	ParamDelta
	ParamTag
)

var ops = [nOps]struct {
	name  string
	param Param
}{
	OpNone:              {"none", ParamNone},
	OpExit:              {"exit", ParamNone},
	OpCycleClient:       {"cycle_client", ParamDirection},
	OpDragClient:        {"drag_client", ParamDirection},
	OpToggleFullscreen:  {"toggle_fullscreen", ParamNone},
	OpKillClient:        {"kill_client", ParamNone},
	OpToggleWorkspace:   {"toggle_workspace", ParamNone},
	OpCycleWorkspace:    {"cycle_workspace", ParamDirection},
	OpCycleLayout:       {"cycle_layout", ParamDirection},
	OpAdjustMainCount:   {"adjust_main_count", ParamDelta},
	OpAdjustMainRatio:   {"adjust_main_ratio", ParamDelta},
	OpFocusWorkspace:    {"focus_workspace", ParamTag},
	OpClientToWorkspace: {"client_to_workspace", ParamTag},
}

func (o Op) String() string {
	if o < 0 || o >= nOps {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return ops[o].name
}

// Param returns the parameter kind o takes.
func (o Op) Param() Param {
	if o < 0 || o >= nOps {
		return ParamNone
	}
	return ops[o].param
}

// ParseOp looks up an Op by its snake_case name.
func ParseOp(name string) (Op, error) {
	for i := OpExit; i < nOps; i++ {
		if ops[i].name == name {
			return i, nil
		}
	}
	return OpNone, fmt.Errorf("bind: unknown operation %q", name)
}

// ParseDirection accepts "forward" or "backward".
func ParseDirection(s string) (wm.Direction, error) {
	switch strings.ToLower(s) {
	case "forward", "next":
		return wm.Forward, nil
	case "backward", "prev":
		return wm.Backward, nil
	}
	return 0, fmt.Errorf("bind: unknown direction %q", s)
}

// ParseDelta accepts "more" or "less".
func ParseDelta(s string) (wm.Delta, error) {
	switch strings.ToLower(s) {
	case "more", "increase":
		return wm.More, nil
	case "less", "decrease":
		return wm.Less, nil
	}
	return 0, fmt.Errorf("bind: unknown adjustment %q", s)
}

// Action is what a chord does: run an external program or perform an
// internal operation. Actions are immutable values.
type Action struct {
	kind  Kind
	cmd   []string
	op    Op
	dir   wm.Direction
	delta wm.Delta
	tag   string
}

// RunExternal returns an action that spawns command with args.
func RunExternal(command string, args ...string) Action {
	return Action{kind: KindExternal, cmd: append([]string{command}, args...)}
}

// RunInternal returns an action for op, which must take no parameter or
// take the given one. The param is a wm.Direction, a wm.Delta or a tag
// string, matching op.Param.
func RunInternal(op Op, param any) (Action, error) {
	a := Action{kind: KindInternal, op: op}
	if op <= OpNone || op >= nOps {
		return Action{}, fmt.Errorf("bind: unknown operation %d", int(op))
	}
	switch op.Param() {
	case ParamNone:
		if param != nil {
			return Action{}, fmt.Errorf("bind: %s takes no parameter, got %v", op, param)
		}
		return a, nil
	case ParamDirection:
		d, ok := param.(wm.Direction)
		if !ok {
			return Action{}, fmt.Errorf("bind: %s needs a direction, got %v", op, param)
		}
		a.dir = d
	case ParamDelta:
		d, ok := param.(wm.Delta)
		if !ok {
			return Action{}, fmt.Errorf("bind: %s needs more or less, got %v", op, param)
		}
		a.delta = d
	case ParamTag:
		t, ok := param.(string)
		if !ok || t == "" {
			return Action{}, fmt.Errorf("bind: %s needs a tag, got %v", op, param)
		}
		a.tag = t
	}
	return a, nil
}

func internal(op Op) Action { return Action{kind: KindInternal, op: op} }

func Exit() Action             { return internal(OpExit) }
func ToggleFullscreen() Action { return internal(OpToggleFullscreen) }
func KillClient() Action       { return internal(OpKillClient) }
func ToggleWorkspace() Action  { return internal(OpToggleWorkspace) }

func CycleClient(d wm.Direction) Action {
	a := internal(OpCycleClient)
	a.dir = d
	return a
}

func DragClient(d wm.Direction) Action {
	a := internal(OpDragClient)
	a.dir = d
	return a
}

func CycleWorkspace(d wm.Direction) Action {
	a := internal(OpCycleWorkspace)
	a.dir = d
	return a
}

func CycleLayout(d wm.Direction) Action {
	a := internal(OpCycleLayout)
	a.dir = d
	return a
}

func AdjustMainCount(d wm.Delta) Action {
	a := internal(OpAdjustMainCount)
	a.delta = d
	return a
}

func AdjustMainRatio(d wm.Delta) Action {
	a := internal(OpAdjustMainRatio)
	a.delta = d
	return a
}

// FocusWorkspace focuses tag. Pass Placeholder when mapping over tags.
func FocusWorkspace(tag string) Action {
	a := internal(OpFocusWorkspace)
	a.tag = tag
	return a
}

// ClientToWorkspace sends the focused client to tag. Pass Placeholder when
// mapping over tags.
func ClientToWorkspace(tag string) Action {
	a := internal(OpClientToWorkspace)
	a.tag = tag
	return a
}

func (a Action) Kind() Kind              { return a.kind }
func (a Action) Op() Op                  { return a.op }
func (a Action) Direction() wm.Direction { return a.dir }
func (a Action) Delta() wm.Delta         { return a.delta }
func (a Action) Tag() string             { return a.tag }

// Command returns the program an external action runs.
func (a Action) Command() string {
	if len(a.cmd) == 0 {
		return ""
	}
	return a.cmd[0]
}

// Args returns a copy of an external action's arguments.
func (a Action) Args() []string {
	if len(a.cmd) < 2 {
		return nil
	}
	return slices.Clone(a.cmd[1:])
}

// Equal reports whether a and b do the same thing.
func (a Action) Equal(b Action) bool {
	return a.kind == b.kind && a.op == b.op && a.dir == b.dir &&
		a.delta == b.delta && a.tag == b.tag && slices.Equal(a.cmd, b.cmd)
}

func (a Action) String() string {
	switch a.kind {
	case KindExternal:
		return "run(" + strings.Join(a.cmd, " ") + ")"
	case KindInternal:
		switch a.op.Param() {
		case ParamDirection:
			return a.op.String() + "(" + a.dir.String() + ")"
		case ParamDelta:
			return a.op.String() + "(" + a.delta.String() + ")"
		case ParamTag:
			return a.op.String() + "(" + a.tag + ")"
		}
		return a.op.String()
	}
	return "none"
}

// expand returns a copy of a with Placeholder replaced by tag.
func (a Action) expand(tag string) Action {
	a.tag = strings.ReplaceAll(a.tag, Placeholder, tag)
	if a.cmd != nil {
		cmd := make([]string, len(a.cmd))
		for i, s := range a.cmd {
			cmd[i] = strings.ReplaceAll(s, Placeholder, tag)
		}
		a.cmd = cmd
	}
	return a
}
