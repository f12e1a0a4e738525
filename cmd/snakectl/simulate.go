package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wricardo/mcp-training/snakegame/game/engine"
)

// roundOutcome is the result of one headless round
type roundOutcome struct {
	Round  int
	Seed   uint64
	Length int
	Ticks  int
	Status engine.RoundStatus
}

// simulateRound plays a single round with the autopilot. A round still
// running after maxTicks is reported as running.
func simulateRound(ctx context.Context, cfg *engine.GameConfig, seed uint64, maxTicks int) (roundOutcome, error) {
	roundCfg := *cfg
	roundCfg.Seed = seed

	eng, err := engine.NewEngine(&roundCfg)
	if err != nil {
		return roundOutcome{}, err
	}

	ticks := 0
	for !eng.IsGameOver() && ticks < maxTicks {
		if ticks%256 == 0 {
			if err := ctx.Err(); err != nil {
				return roundOutcome{}, err
			}
		}

		if d := nextMove(eng.GetState()); d != engine.None {
			eng.Turn(d)
		}
		eng.Tick()
		ticks++
	}

	return roundOutcome{
		Seed:   seed,
		Length: eng.GetScore(),
		Ticks:  ticks,
		Status: eng.GetStatus(),
	}, nil
}

// simulate runs rounds in parallel. Round i uses seed+i; a zero seed picks a
// base from the clock.
func simulate(ctx context.Context, cfg *engine.GameConfig, rounds int, seed uint64, maxTicks int) ([]roundOutcome, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be positive, got %d", rounds)
	}
	if maxTicks < 1 {
		return nil, fmt.Errorf("max ticks must be positive, got %d", maxTicks)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	outcomes := make([]roundOutcome, rounds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < rounds; i++ {
		i := i
		g.Go(func() error {
			out, err := simulateRound(ctx, cfg, seed+uint64(i), maxTicks)
			if err != nil {
				return fmt.Errorf("round %d: %w", i+1, err)
			}
			out.Round = i + 1
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// printOutcomes writes one line per round and a summary
func printOutcomes(w io.Writer, cfg *engine.GameConfig, outcomes []roundOutcome) {
	fmt.Fprintf(w, "Config: %s (%dx%d)\n\n", cfg.Name, cfg.GridWidth, cfg.GridHeight)

	best, total := 0, 0
	byStatus := make(map[engine.RoundStatus]int)
	for _, o := range outcomes {
		fmt.Fprintf(w, "Round %3d seed=%d length=%d ticks=%d status=%s\n", o.Round, o.Seed, o.Length, o.Ticks, o.Status)
		total += o.Length
		if o.Length > best {
			best = o.Length
		}
		byStatus[o.Status]++
	}

	fmt.Fprintf(w, "\nRounds: %d\n", len(outcomes))
	fmt.Fprintf(w, "Best length: %d\n", best)
	if len(outcomes) > 0 {
		fmt.Fprintf(w, "Average length: %.1f\n", float64(total)/float64(len(outcomes)))
	}
	for _, status := range []engine.RoundStatus{engine.StatusLostWall, engine.StatusLostSelf, engine.StatusBoardFull, engine.StatusRunning} {
		if n := byStatus[status]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", status, n)
		}
	}
}
