package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wordbrowse/internal/adapters/tui"
	"wordbrowse/internal/app"
	"wordbrowse/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := app.OpenLogFile(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := app.NewLogger(cfg.Log, logFile)
	svc := app.NewServices(cfg, logger)
	defer svc.Close()

	p := tea.NewProgram(tui.NewApp(svc.Provider, svc.Lookup), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
