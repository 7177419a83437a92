package arena

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
	"github.com/thekrainbow/gomoku/internal/game"
	"github.com/thekrainbow/gomoku/internal/opponent"
)

const initialElo = 1500.0

type Options struct {
	Matches      int
	Workers      int
	OpeningPlies int
	EloK         float64
	Seed         int64
	Engine       engine.Config
	Computer     opponent.Kind
}

type MatchResult struct {
	Index   int           `json:"index"`
	Opening []board.Move  `json:"opening"`
	Status  game.Status   `json:"status"`
	Plies   int           `json:"plies"`
	Elapsed time.Duration `json:"elapsedNs"`
}

type Contender struct {
	ID     string  `json:"id"`
	Elo    float64 `json:"elo"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Draws  int     `json:"draws"`
}

type Report struct {
	Results   []MatchResult `json:"results"`
	Standings []Contender   `json:"standings"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

// Run plays opts.Matches games between a casual player in the human seat
// and the configured computer opponent. Matches run on at most
// opts.Workers goroutines, each on its own grid. Cancelling ctx stops new
// matches from starting; the report covers the ones that finished.
func Run(ctx context.Context, opts Options, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Matches < 1 {
		return Report{}, fmt.Errorf("arena needs at least one match, got %d", opts.Matches)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Computer == "" {
		opts.Computer = opponent.KindMinimax
	}
	if _, err := opponent.ParseKind(string(opts.Computer)); err != nil {
		return Report{}, err
	}

	start := time.Now()
	openings := buildOpeningSuite(opts.Matches, opts.OpeningPlies, opts.Seed)
	results := make([]*MatchResult, opts.Matches)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range openings {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, err := playMatch(gctx, i, openings[i], opts, logger)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			results[i] = &res
			logger.Debug("match finished",
				zap.Int("match", i),
				zap.Stringer("status", res.Status),
				zap.Int("plies", res.Plies),
				zap.Duration("elapsed", res.Elapsed),
			)
			return nil
		})
	}
	err := g.Wait()

	report := aggregate(results, opts)
	report.Elapsed = time.Since(start)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return report, err
	}
	logger.Info("arena done",
		zap.Int("matches", len(report.Results)),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, err
}

func playMatch(ctx context.Context, index int, opening []board.Move, opts Options, logger *zap.Logger) (MatchResult, error) {
	start := time.Now()
	seed := opts.Seed + int64(index)*7919
	computer, err := opponent.New(opts.Computer, opts.Engine, seed, logger.Named("computer"))
	if err != nil {
		return MatchResult{}, err
	}
	human := opponent.NewCasual(board.Human, rand.New(rand.NewSource(seed+1)))
	g := game.New(computer, opts.Engine, zap.NewNop())

	for _, move := range opening {
		if err := g.PlayOpening(move); err != nil {
			return MatchResult{}, fmt.Errorf("opening %v: %w", move, err)
		}
	}
	for !g.Status().Over() {
		if err := ctx.Err(); err != nil {
			return MatchResult{}, err
		}
		var err error
		if g.ToMove() == board.Human {
			_, err = g.PlaySeat(human)
		} else {
			_, err = g.PlayComputer()
		}
		if errors.Is(err, game.ErrNoMove) {
			break
		}
		if err != nil {
			return MatchResult{}, err
		}
	}
	return MatchResult{
		Index:   index,
		Opening: opening,
		Status:  g.Status(),
		Plies:   g.History().Size(),
		Elapsed: time.Since(start),
	}, nil
}

func aggregate(results []*MatchResult, opts Options) Report {
	human := Contender{ID: "human-seat:" + string(opponent.KindCasual), Elo: initialElo}
	computer := Contender{ID: "computer-seat:" + string(opts.Computer), Elo: initialElo}
	k := opts.EloK
	if k <= 0 {
		k = 24
	}

	var report Report
	for _, res := range results {
		if res == nil {
			continue
		}
		report.Results = append(report.Results, *res)
		var resultForHuman float64
		switch res.Status {
		case game.StatusHumanWon:
			resultForHuman = 1
			human.Wins++
			computer.Losses++
		case game.StatusComputerWon:
			human.Losses++
			computer.Wins++
		default:
			resultForHuman = 0.5
			human.Draws++
			computer.Draws++
		}
		updateElo(&human, &computer, resultForHuman, k)
	}
	report.Standings = []Contender{human, computer}
	sortContendersByElo(report.Standings)
	return report
}
