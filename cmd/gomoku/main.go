package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/config"
	"github.com/thekrainbow/gomoku/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML/JSON/TOML config file")
	logPath := flag.String("log", "", "Write logs to this file (the terminal is used by the board)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *logPath != "" {
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Development, *logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	p := tea.NewProgram(newModel(cfg.EngineConfig(), cfg.Opponent.Seed, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("terminal program failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
