package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/apodview/pkg/config"
	"github.com/rubiojr/apodview/pkg/loader"
	"github.com/urfave/cli/v3"
)

// FetchCommand creates the fetch command
func FetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch the APOD collection and print it as a gallery",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of cards to print (0 for no limit)",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "no-pager",
				Usage: "Disable pager and output directly to terminal",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return fetchGallery(ctx, cfg, c.Int("limit"), c.Bool("no-pager"))
		},
	}
}

// fetchGallery runs one load cycle and prints the resulting gallery.
func fetchGallery(ctx context.Context, cfg *config.Config, limit int, noPager bool) error {
	ld, err := loadRecords(ctx, cfg)
	if err != nil {
		return err
	}

	output := formatGallery(ld.Grid(), ld.Source().Name(), limit)
	if err := printOutput(output, noPager); err != nil {
		return err
	}

	if err := ld.LastError(); err != nil {
		return fmt.Errorf("fetching records: %w", err)
	}
	return nil
}

// loadRecords builds a loader for cfg and runs one fetch cycle. Fetch
// failures are left in the loader for the caller to report.
func loadRecords(ctx context.Context, cfg *config.Config) (*loader.Orchestrator, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	ld := loader.New(src, newRenderer(cfg))
	ld.FetchAndRender(ctx)
	return ld, nil
}
