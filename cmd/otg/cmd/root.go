package cmd

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGrid/internal/logging"
	"github.com/OpenTraceLab/OpenTraceGrid/pkg/grid"
)

var (
	// Global flags
	verbose bool
	sets    []string
)

var rootCmd = &cobra.Command{
	Use:   "otg",
	Short: "OpenTraceGrid - grid overlay for images and video",
	Long: `OpenTraceGrid (otg) lays an adjustable square grid over a picture so
features can be located, counted or measured cell by cell.

Examples:
  otg ui board.jpg                           # Open the interactive overlay
  otg ui --set "grid_n=16, rotation=12.5"    # Start with a customised grid
  otg snapshot board.jpg -o board-grid.png   # Render media and grid to PNG
  otg grid --set cell_size=40 --segments     # Print the grid geometry`,
	Version: "0.3.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringArrayVar(&sets, "set", nil,
		`grid parameters, e.g. "grid_n=12, line_color=#ff0000" (repeatable)`)
}

// setupLogging routes the tagged log output and the library loggers.
func setupLogging(w io.Writer) {
	log.SetOutput(w)
	log.SetFlags(log.Ltime)
	if !verbose {
		log.SetOutput(io.Discard)
		return
	}
	gg.SetLogger(logging.New(w, true))
}

// libLogger is handed to the library packages.
func libLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), verbose)
}

// patchFromFlags merges every --set value, later values winning.
func patchFromFlags() (grid.Patch, error) {
	var p grid.Patch
	for _, s := range sets {
		next, err := grid.ParsePatch(s)
		if err != nil {
			return grid.Patch{}, fmt.Errorf("--set %q: %w", s, err)
		}
		p = p.Merge(next)
	}
	return p, nil
}
