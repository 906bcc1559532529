package main

import (
	"context"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/bar"
	"github.com/nigeltao/tagwm/bind"
	"github.com/nigeltao/tagwm/config"
	"github.com/nigeltao/tagwm/hook"
	"github.com/nigeltao/tagwm/spawn"
	"github.com/nigeltao/tagwm/xhost"
)

func newRunCmd(cfgPath *string) *cobra.Command {
	var display string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Manage the X display (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWM(cmd.Context(), *cfgPath, display)
		},
	}
	cmd.Flags().StringVar(&display, "display", "", "X display to manage (default $DISPLAY)")
	return cmd
}

func runWM(ctx context.Context, cfgPath, display string) error {
	logger := pslog.Ctx(ctx)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	// A bad binding stops us here, before anything touches the display.
	table, err := cfg.KeyTable()
	if err != nil {
		return err
	}
	var barCfg bar.Config
	barHeight := 0
	if cfg.Bar.Enabled {
		if barCfg, err = cfg.StatusBar(); err != nil {
			return err
		}
		barHeight = barCfg.Height
	}

	sess, err := xhost.Open(xhost.Options{
		Display:   display,
		State:     cfg.StateOptions(),
		BarHeight: barHeight,
		Log:       logger.With("component", "xhost"),
	})
	if err != nil {
		return err
	}
	dispatcher := bind.NewDispatcher(table, &spawn.Exec{Log: logger.With("component", "spawn")}, logger.With("component", "bind"))

	var hooks []hook.Hook
	if cfg.Bar.Enabled {
		b, err := bar.New(sess.Backend(), barCfg, logger)
		if err != nil {
			sess.Close()
			return err
		}
		hooks = append(hooks, b)
	}
	return sess.Run(ctx, table, dispatcher, hooks...)
}
