package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("tagwm failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "tagwm",
		Short:         "A tiling X11 window manager with tagged workspaces",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWM(cmd.Context(), cfgPath, "")
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/tagwm/config.yaml)")

	root.AddCommand(newRunCmd(&cfgPath))
	root.AddCommand(newCheckCmd(&cfgPath))
	root.AddCommand(newKeysCmd(&cfgPath))
	root.AddCommand(newConfigCmd(&cfgPath))
	root.AddCommand(newPreviewCmd(&cfgPath))
	return root
}
