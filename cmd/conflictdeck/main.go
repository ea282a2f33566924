// cmd/conflictdeck/main.go
//
// Entry point for the ConflictDeck console. Running `conflictdeck` in a
// project directory initializes the .conflictdeck folder and starts the
// full-screen dashboard.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/medroster/conflictdeck/internal/config"
	"github.com/medroster/conflictdeck/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitDeckDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .conflictdeck directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting ConflictDeck: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
