// Command snakectl is the operator tool for the snake server. It validates
// and analyzes configuration files, runs headless autopilot rounds against
// the engine, and plays a live server session over REST.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func configDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config-dir",
		Value:   "configs",
		Usage:   "directory holding game configuration files",
		Sources: cli.EnvVars("CONFIG_DIR"),
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "snakectl",
		Usage: "inspect configurations and run the snake autopilot",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "validate every configuration file",
				Flags: []cli.Flag{configDirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return validateConfigs(cmd.Root().Writer, cmd.String("config-dir"))
				},
			},
			{
				Name:  "analyze",
				Usage: "print board size and timing for every configuration",
				Flags: []cli.Flag{configDirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return analyzeConfigs(cmd.Root().Writer, cmd.String("config-dir"))
				},
			},
			{
				Name:  "simulate",
				Usage: "play headless rounds with the greedy autopilot",
				Flags: []cli.Flag{
					configDirFlag(),
					&cli.StringFlag{Name: "config", Usage: "config ID or file (default: the default config)"},
					&cli.IntFlag{Name: "rounds", Value: 10, Usage: "number of rounds"},
					&cli.IntFlag{Name: "seed", Usage: "base seed, 0 picks one from the clock"},
					&cli.IntFlag{Name: "max-ticks", Value: 10000, Usage: "tick limit per round"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd.String("config-dir"), cmd.String("config"))
					if err != nil {
						return err
					}
					seed := cmd.Int("seed")
					if seed < 0 {
						return fmt.Errorf("seed must not be negative")
					}

					outcomes, err := simulate(ctx, cfg, cmd.Int("rounds"), uint64(seed), cmd.Int("max-ticks"))
					if err != nil {
						return err
					}
					printOutcomes(cmd.Root().Writer, cfg, outcomes)
					return nil
				},
			},
			{
				Name:  "autoplay",
				Usage: "play one round on a running server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "server base URL"},
					&cli.StringFlag{Name: "config", Usage: "config ID for the new session"},
					&cli.IntFlag{Name: "max-ticks", Value: 5000, Usage: "tick limit"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client := NewClient(cmd.String("url"))
					_, err := autoplay(ctx, cmd.Root().Writer, client, cmd.String("config"), cmd.Int("max-ticks"))
					return err
				},
			},
		},
	}
}
