package cmd

import (
	"fmt"

	"github.com/rubiojr/apodview/pkg/config"
	"github.com/rubiojr/apodview/pkg/format"
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/log"
	"github.com/rubiojr/apodview/pkg/render"
	"github.com/rubiojr/apodview/pkg/source"
	"github.com/urfave/cli/v3"
)

// loadConfig reads the configuration selected by the global --config flag
// and applies its logging settings.
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := setupLogging(cfg, c.Bool("debug")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging applies the [log] section. The --debug flag wins over the
// configured debug setting.
func setupLogging(cfg *config.Config, debug bool) error {
	log.SetGlobalDebug(debug || cfg.Log.Debug)
	if cfg.Log.File == "" {
		return nil
	}
	err := log.SetupFile(log.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("setting up log file: %w", err)
	}
	return nil
}

// newSource builds the record source from the [source] section.
func newSource(cfg *config.Config) (source.Source, error) {
	src, err := source.New(cfg.SourceConfig())
	if err != nil {
		return nil, fmt.Errorf("creating source: %w", err)
	}
	return src, nil
}

// newRenderer builds the gallery renderer for the configured locale.
func newRenderer(cfg *config.Config) *gallery.Renderer {
	return gallery.NewRenderer(format.NewFormatter(cfg.Display.Locale), render.GetGlobalRegistry())
}
