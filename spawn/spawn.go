// Package spawn launches external programs for key bindings without
// waiting for them.
package spawn

import (
	"context"
	"errors"
	"os/exec"

	"pkt.systems/pslog"
)

// Exec starts programs in their own session so that they outlive the
// window manager's controlling terminal and are not sent its signals.
type Exec struct {
	Log pslog.Logger
	// Env, if non-nil, replaces the environment of started programs.
	Env []string
}

// Spawn starts name with args and returns once the process is running.
// The process is reaped in the background and its exit status is only
// logged.
func (e *Exec) Spawn(name string, args ...string) error {
	if name == "" {
		return errors.New("spawn: empty command")
	}
	log := e.Log
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	c := exec.Command(name, args...)
	c.Env = e.Env
	detach(c)
	if err := c.Start(); err != nil {
		return err
	}
	pid := c.Process.Pid
	log.Debug("spawned", "cmd", name, "pid", pid)
	go func() {
		if err := c.Wait(); err != nil {
			log.Debug("spawned program exited", "cmd", name, "pid", pid, "err", err)
		}
	}()
	return nil
}
