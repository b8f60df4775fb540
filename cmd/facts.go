package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rubiojr/apodview/pkg/config"
	"github.com/rubiojr/apodview/pkg/facts"
	"github.com/urfave/cli/v3"
)

// FactsCommand creates the facts command
func FactsCommand() *cli.Command {
	return &cli.Command{
		Name:  "facts",
		Usage: "Print a random space fact",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep printing a new fact every interval until interrupted",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return showFacts(ctx, cfg, c.Bool("watch"))
		},
	}
}

func showFacts(ctx context.Context, cfg *config.Config, watch bool) error {
	rot, err := facts.New(cfg.FactList(), cfg.Display.FactInterval.Duration)
	if err != nil {
		return fmt.Errorf("creating fact rotator: %w", err)
	}

	if !watch {
		fmt.Println(formatFact(rot.Pick()))
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	rot.Run(ctx, func(fact string) {
		fmt.Println(formatFact(fact))
	})
	return nil
}
