package bind

import (
	"context"
	"fmt"

	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/wm"
)

// Spawner starts an external program without waiting for it.
type Spawner interface {
	Spawn(command string, args ...string) error
}

// Dispatcher resolves key presses against a Table. It is called once per
// key press from the event loop.
type Dispatcher struct {
	table   *Table
	spawner Spawner
	log     pslog.Logger
}

// NewDispatcher returns a Dispatcher. A nil logger means the logger of the
// background context.
func NewDispatcher(table *Table, spawner Spawner, log pslog.Logger) *Dispatcher {
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	return &Dispatcher{table: table, spawner: spawner, log: log}
}

// Dispatch performs the action bound to c. Unbound chords do nothing and
// return nil. Errors are *SpawnError or *InternalActionError and concern
// only this key press.
func (d *Dispatcher) Dispatch(c Chord, h wm.Handle) error {
	a, ok := d.table.Lookup(c)
	if !ok {
		d.log.Debug("unbound chord", "chord", c.String())
		return nil
	}
	d.log.Debug("dispatch", "chord", c.String(), "action", a.String())
	switch a.Kind() {
	case KindExternal:
		return d.spawn(a)
	case KindInternal:
		return d.internal(a, h)
	}
	return nil
}

func (d *Dispatcher) spawn(a Action) error {
	if d.spawner == nil {
		return &SpawnError{Command: a.Command(), Args: a.Args(), Err: fmt.Errorf("no spawner")}
	}
	if err := d.spawner.Spawn(a.Command(), a.Args()...); err != nil {
		return &SpawnError{Command: a.Command(), Args: a.Args(), Err: err}
	}
	return nil
}

func (d *Dispatcher) internal(a Action, h wm.Handle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InternalActionError{Action: a, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := apply(a, h); err != nil {
		return &InternalActionError{Action: a, Err: err}
	}
	return nil
}

func apply(a Action, h wm.Handle) error {
	switch a.Op() {
	case OpExit:
		h.Exit()
		return nil
	case OpCycleClient:
		return h.CycleClient(a.Direction())
	case OpDragClient:
		return h.DragClient(a.Direction())
	case OpToggleFullscreen:
		return h.ToggleFullscreen()
	case OpKillClient:
		return h.KillFocused()
	case OpToggleWorkspace:
		return h.ToggleTag()
	case OpCycleWorkspace:
		return h.CycleTag(a.Direction())
	case OpCycleLayout:
		return h.CycleLayout(a.Direction())
	case OpAdjustMainCount:
		return h.AdjustMainCount(a.Delta())
	case OpAdjustMainRatio:
		return h.AdjustMainRatio(a.Delta())
	case OpFocusWorkspace:
		return h.FocusTag(a.Tag())
	case OpClientToWorkspace:
		return h.MoveFocusedClient(a.Tag())
	}
	return fmt.Errorf("unsupported operation %s", a.Op())
}
