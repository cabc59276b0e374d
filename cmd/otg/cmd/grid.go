package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/render"
)

var (
	gridWidth    float64
	gridHeight   float64
	gridSegments bool
	gridJSON     bool
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show the resolved grid parameters",
	Long: `Apply --set values to the default grid and print the clamped result.
With --segments the line geometry for a --width x --height target is
listed as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags()
		if err != nil {
			return err
		}
		cfg := grid.NewConfig()
		cfg.Apply(patch)
		st := cfg.State()

		var segs []render.Segment
		if gridSegments {
			rec := render.NewRecorder()
			render.Draw(rec, gridWidth, gridHeight, cfg)
			segs = rec.Segments()
		}

		out := cmd.OutOrStdout()
		if gridJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				State    grid.State       `json:"state"`
				Segments []render.Segment `json:"segments,omitempty"`
			}{st, segs})
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "grid_n\t%d (effective %d)\n", st.GridN, st.EffectiveN())
		fmt.Fprintf(tw, "cell_size\t%g\n", st.CellSize)
		fmt.Fprintf(tw, "rotation\t%g\n", st.Rotation)
		fmt.Fprintf(tw, "position\t%g, %g\n", st.PositionX, st.PositionY)
		fmt.Fprintf(tw, "line_color\t%s\n", st.LineColor)
		fmt.Fprintf(tw, "line_width\t%g\n", st.LineWidth)
		fmt.Fprintf(tw, "line_opacity\t%g\n", st.LineOpacity)
		fmt.Fprintf(tw, "total_size\t%g\n", st.TotalGridSize())
		if err := tw.Flush(); err != nil {
			return err
		}
		if gridSegments {
			fmt.Fprintf(out, "\n%d segments on %gx%g:\n", len(segs), gridWidth, gridHeight)
			for _, s := range segs {
				fmt.Fprintf(out, "  (%.2f, %.2f) -> (%.2f, %.2f)\n", s.X0, s.Y0, s.X1, s.Y1)
			}
		}
		return nil
	},
}

func init() {
	gridCmd.Flags().Float64Var(&gridWidth, "width", 800, "target width")
	gridCmd.Flags().Float64Var(&gridHeight, "height", 600, "target height")
	gridCmd.Flags().BoolVar(&gridSegments, "segments", false, "list the line segments")
	gridCmd.Flags().BoolVar(&gridJSON, "json", false, "JSON output")
	rootCmd.AddCommand(gridCmd)
}
