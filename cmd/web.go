package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/apodview/pkg/config"
	"github.com/rubiojr/apodview/pkg/log"
	"github.com/rubiojr/apodview/pkg/web"
	"github.com/urfave/cli/v3"
)

// WebCommand creates the web command
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the web gallery",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides [web] port)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides [web] host)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			defer func() { _ = log.CloseFile() }()

			if h := c.String("host"); h != "" {
				cfg.Web.Host = h
			}
			if p := c.String("port"); p != "" {
				port, err := strconv.Atoi(p)
				if err != nil {
					return fmt.Errorf("invalid port %q: %w", p, err)
				}
				cfg.Web.Port = port
			}
			return startWebServer(ctx, c.String("config"), cfg)
		},
	}
}

// startWebServer serves the gallery until SIGINT or SIGTERM. SIGHUP or a
// change to the configuration file reloads the record source.
func startWebServer(ctx context.Context, configPath string, cfg *config.Config) error {
	logger := log.For("web")

	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(web.Options{
		Source:       src,
		Locale:       cfg.Display.Locale,
		Facts:        cfg.FactList(),
		FactInterval: cfg.Display.FactInterval.Duration,
	})
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Addr(), err)
	}

	server := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting web server on http://%s", ln.Addr())
		logger.Infof("Available endpoints:")
		logger.Infof("  GET /            - Gallery page")
		logger.Infof("  GET /ws          - Page session WebSocket")
		logger.Infof("  GET /api/records - Records, newest first")
		logger.Infof("  GET /health      - Health check")
		logger.Infof("Record source: %s", src.Name())

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	var events <-chan fsnotify.Event
	var watchErrors <-chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close config file watcher: %v", err)
			}
		}()
		if err := watcher.Add(configPath); err != nil {
			logger.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			logger.Infof("Watching config file for changes: %s", configPath)
		}
		events = watcher.Events
		watchErrors = watcher.Errors
	}

	for {
		select {
		case err := <-errCh:
			return fmt.Errorf("serving: %w", err)

		case <-ctx.Done():
			return shutdown(srv, server)

		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				logger.Infof("Received SIGHUP, reloading configuration...")
				if err := reloadSource(configPath, srv); err != nil {
					logger.Errorf("Failed to reload configuration: %v", err)
				}
			default:
				return shutdown(srv, server)
			}

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			// Editors often replace the file instead of writing it.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Infof("Config file changed: %s (event: %s), reloading configuration...", event.Name, event.Op.String())
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(200 * time.Millisecond)
				if _, err := os.Stat(configPath); os.IsNotExist(err) {
					logger.Warnf("Config file was removed and not replaced, skipping reload")
					continue
				}
				if err := watcher.Add(configPath); err != nil {
					logger.Warnf("failed to re-add config file to watcher: %v", err)
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}
			if err := reloadSource(configPath, srv); err != nil {
				logger.Errorf("Failed to reload configuration after file change: %v", err)
			}

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			logger.Warnf("Config file watcher error: %v", err)
		}
	}
}

// reloadSource re-reads the configuration and switches the server, and every
// live session, to the configured source.
func reloadSource(configPath string, srv *web.Server) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading new config: %w", err)
	}
	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	if current := srv.Source(); current != nil && current.Name() == src.Name() {
		log.For("web").Debugf("source unchanged (%s)", src.Name())
		return nil
	}
	srv.SetSource(src)
	return nil
}

func shutdown(srv *web.Server, server *http.Server) error {
	logger := log.For("web")
	logger.Infof("Shutting down web server...")
	srv.NotifyShutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
