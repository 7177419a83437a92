package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/arena"
	"github.com/thekrainbow/gomoku/internal/config"
	"github.com/thekrainbow/gomoku/internal/logging"
	"github.com/thekrainbow/gomoku/internal/opponent"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML/JSON/TOML config file")
	matches := flag.Int("matches", 0, "Override arena.matches")
	asJSON := flag.Bool("json", false, "Print the report as JSON")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *matches > 0 {
		cfg.Arena.Matches = *matches
	}
	logger := logging.Must(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()

	kind, err := opponent.ParseKind(cfg.Opponent.Kind)
	if err != nil {
		logger.Fatal("invalid opponent", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := arena.Run(ctx, arena.Options{
		Matches:      cfg.Arena.Matches,
		Workers:      cfg.Arena.Workers,
		OpeningPlies: cfg.Arena.OpeningPlies,
		EloK:         cfg.Arena.EloK,
		Seed:         cfg.Arena.Seed,
		Engine:       cfg.EngineConfig(),
		Computer:     kind,
	}, logger.Named("arena"))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("arena failed", zap.Error(err))
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}
	fmt.Printf("%d matches in %s\n", len(report.Results), report.Elapsed.Round(time.Millisecond))
	for _, c := range report.Standings {
		fmt.Printf("%-24s elo=%7.1f  W%d L%d D%d\n", c.ID, c.Elo, c.Wins, c.Losses, c.Draws)
	}
}
