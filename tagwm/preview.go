package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/bar"
	"github.com/nigeltao/tagwm/canvas"
	"github.com/nigeltao/tagwm/canvas/raster"
	"github.com/nigeltao/tagwm/config"
	"github.com/nigeltao/tagwm/wm"
)

type previewOptions struct {
	out      string
	width    int
	focus    string
	occupied []string
}

func newPreviewCmd(cfgPath *string) *cobra.Command {
	var o previewOptions
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the status bar to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			data, err := renderPreview(cfg, o, pslog.Ctx(cmd.Context()))
			if err != nil {
				return err
			}
			if err := os.WriteFile(o.out, data, 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", o.out)
			return err
		},
	}
	cmd.Flags().StringVarP(&o.out, "out", "o", "bar.png", "output file")
	cmd.Flags().IntVar(&o.width, "width", 800, "bar width in pixels")
	cmd.Flags().StringVar(&o.focus, "focus", "", "focused tag (default the first)")
	cmd.Flags().StringSliceVar(&o.occupied, "occupied", nil, "tags that have clients")
	return cmd
}

// renderPreview draws the bar for a made-up client distribution and
// returns it as PNG.
func renderPreview(cfg config.Config, o previewOptions, logger pslog.Logger) ([]byte, error) {
	barCfg, err := cfg.StatusBar()
	if err != nil {
		return nil, err
	}
	st, err := wm.NewState(cfg.StateOptions())
	if err != nil {
		return nil, err
	}
	next := wm.ClientID(1)
	for _, tag := range o.occupied {
		if err := st.FocusTag(tag); err != nil {
			return nil, err
		}
		st.Add(next)
		next++
	}
	focus := o.focus
	if focus == "" {
		focus = cfg.Tags[0]
	}
	if err := st.FocusTag(focus); err != nil {
		return nil, err
	}

	var frame *image.RGBA
	backend := raster.New(raster.Options{
		Screens: []canvas.Size{{W: o.width, H: barCfg.Height}},
		FontDir: cfg.Bar.FontDir,
		OnFlush: func(img *image.RGBA) error {
			frame = img
			return nil
		},
	})
	b, err := bar.New(backend, barCfg, logger)
	if err != nil {
		return nil, err
	}
	if err := b.Startup(st); err != nil {
		return nil, err
	}
	defer b.Teardown()
	if frame == nil {
		return nil, fmt.Errorf("preview: bar did not draw")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
