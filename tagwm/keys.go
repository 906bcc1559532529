package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nigeltao/tagwm/config"
)

func newCheckCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration without touching the display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			table, err := cfg.KeyTable()
			if err != nil {
				return err
			}
			if cfg.Bar.Enabled {
				if _, err := cfg.StatusBar(); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d bindings, %d tags\n", table.Len(), len(cfg.Tags))
			return err
		},
	}
}

func newKeysCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			table, err := cfg.KeyTable()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range table.Chords() {
				a, _ := table.Lookup(c)
				if _, err := fmt.Fprintf(out, "%-16s %s\n", c, a); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newConfigCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			return config.Dump(cmd.OutOrStdout(), cfg)
		},
	}
}
