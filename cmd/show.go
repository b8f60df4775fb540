package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/config"
	"github.com/rubiojr/apodview/pkg/overlay"
	"github.com/urfave/cli/v3"
)

// ShowCommand creates the show command
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the detail view of one record",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "index",
				Usage: "Card position in the newest-first gallery",
				Value: -1,
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "Record date (YYYY-MM-DD)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			index := c.Int("index")
			date := c.String("date")
			if index < 0 && date == "" {
				return fmt.Errorf("one of --index or --date is required")
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return showRecord(ctx, cfg, index, date)
		},
	}
}

// showRecord fetches the collection, opens the overlay on the selected
// record and prints its content.
func showRecord(ctx context.Context, cfg *config.Config, index int, date string) error {
	ld, err := loadRecords(ctx, cfg)
	if err != nil {
		return err
	}
	if err := ld.LastError(); err != nil {
		return fmt.Errorf("fetching records: %w", err)
	}

	rec, ok := selectRecord(ld.Records(), index, date)
	if !ok {
		if date != "" {
			return fmt.Errorf("no record dated %s", date)
		}
		return fmt.Errorf("index %d out of range (%d records)", index, len(ld.Records()))
	}

	renderer := newRenderer(cfg)
	ov := overlay.New(renderer.Formatter(), renderer.Media())
	ov.Open(rec)
	fmt.Println(formatDetail(ov.Detail()))
	ov.Close()
	return nil
}

// selectRecord picks a record by date when date is set, else by index.
func selectRecord(records []apod.Record, index int, date string) (apod.Record, bool) {
	if date != "" {
		for _, rec := range records {
			if rec.Date == date {
				return rec, true
			}
		}
		return apod.Record{}, false
	}
	if index < 0 || index >= len(records) {
		return apod.Record{}, false
	}
	return records[index], true
}
