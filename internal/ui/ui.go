package ui

import (
	"log"
	"os"

	"gioui.org/app"
)

// Run launches the Gio UI and blocks until the window closes.
func Run(opts Options) error {
	go func() {
		w := new(app.Window)
		ui := New(w, opts)
		if err := ui.Run(); err != nil {
			log.Printf("[UI] %v", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
