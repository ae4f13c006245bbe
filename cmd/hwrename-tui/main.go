package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/tui"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/mydehq/hwrename/internal/worker"
)

func main() {
	global, err := config.LoadGlobal()
	if err != nil {
		fmt.Printf("Error loading global config: %v\n", err)
		os.Exit(1)
	}

	path := global.ConfigFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// The alt screen owns stdout, so worker logs are kept to errors.
	logger := ui.NewLogger(os.Stderr, "error")
	w := worker.New(logger)
	w.Start()
	defer w.Close()

	p := tea.NewProgram(tui.NewModel(path, global.Pacing, w), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
