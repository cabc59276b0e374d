package cmd

import (
	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/OpenTraceGrid/internal/ui"
)

var uiConfigPath string

var uiCmd = &cobra.Command{
	Use:   "ui [media]",
	Short: "Launch the interactive overlay",
	Long: `Launch the grid overlay window. The grid starts from the saved
defaults, adjusted by any --set values, and the optional media file is
loaded underneath it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags()
		if err != nil {
			return err
		}
		opts := appui.Options{
			Patch:      patch,
			ConfigPath: uiConfigPath,
			Logger:     libLogger(cmd),
		}
		if len(args) == 1 {
			opts.MediaPath = args[0]
		}
		return appui.Run(opts)
	},
}

func init() {
	uiCmd.Flags().StringVar(&uiConfigPath, "config", "", "settings file (default: per-user config)")
	rootCmd.AddCommand(uiCmd)
}
