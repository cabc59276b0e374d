package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/media"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/snapshot"
)

var (
	snapOutput string
	snapWidth  float64
	snapHeight float64
	snapScale  float64
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [media]",
	Short: "Render media with the grid to a PNG file",
	Long: `Render the grid over a still image (or over a blank canvas when no
media is given) and write the result as PNG. The canvas defaults to the
image's own size; --width and --height override it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags()
		if err != nil {
			return err
		}
		cfg := grid.NewConfig()
		cfg.Apply(patch)

		m := media.None
		if len(args) == 1 {
			m, err = media.Load(args[0])
			if err != nil {
				return err
			}
			log.Printf("[MEDIA] Loaded %s", m)
			if !m.Drawable() {
				log.Printf("[MEDIA] %s has no decodable frame, drawing the grid only", m.Name())
			}
		}

		opts := snapshot.ForMedia(m, 800, 600)
		if snapWidth > 0 {
			opts.Width = snapWidth
		}
		if snapHeight > 0 {
			opts.Height = snapHeight
		}
		opts.Scale = snapScale

		out := snapOutput
		if out == "" {
			out = defaultSnapshotName(m)
		}

		snap, err := snapshot.Capture(m, cfg, opts)
		if err != nil {
			return err
		}
		defer snap.Close()
		if snap.Empty() {
			log.Printf("[EXPORT] Target %gx%g has no pixels, nothing written", opts.Width, opts.Height)
			return nil
		}
		if err := snap.WritePNG(out); err != nil {
			return err
		}
		w, h := snap.Size()
		log.Printf("[EXPORT] Wrote %s (%dx%d)", out, w, h)
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func defaultSnapshotName(m *media.Media) string {
	if m.Path == "" {
		return "grid-snapshot.png"
	}
	name := m.Name()
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name + "-grid.png"
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapOutput, "output", "o", "", "output PNG path")
	snapshotCmd.Flags().Float64Var(&snapWidth, "width", 0, "canvas width in logical pixels")
	snapshotCmd.Flags().Float64Var(&snapHeight, "height", 0, "canvas height in logical pixels")
	snapshotCmd.Flags().Float64Var(&snapScale, "scale", 1, "pixels per logical pixel")
	rootCmd.AddCommand(snapshotCmd)
}
