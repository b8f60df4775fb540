package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rubiojr/apodview/pkg/apod"
)

// DefaultURL is the APOD snapshot served when nothing else is configured.
const DefaultURL = "https://cdn.jsdelivr.net/gh/GCA-Classroom/apod/data.json"

// DefaultTimeout bounds a single retrieval.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with HTTP requests.
const DefaultUserAgent = "apodview/1.0"

// maxPayload caps the decoded payload size.
const maxPayload = 32 << 20

// Source retrieves the record collection.
type Source interface {
	// Name identifies the source in logs (the URL or file path).
	Name() string
	// Fetch performs one retrieval. Records come back in source order.
	Fetch(ctx context.Context) ([]apod.Record, error)
}

// Config selects and configures a Source.
type Config struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// Validate fills defaults and rejects unusable locations.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		c.URL = DefaultURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("parsing source url: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("source url %q has no host", c.URL)
		}
	case "file", "":
	default:
		return fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
	return nil
}

// New builds the Source for cfg: HTTP(S) URLs are fetched over the network,
// file:// URLs and plain paths are read from disk.
func New(cfg Config) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	u, _ := url.Parse(cfg.URL)
	switch u.Scheme {
	case "http", "https":
		return NewHTTP(cfg), nil
	case "file":
		return NewFile(u.Path), nil
	default:
		return NewFile(cfg.URL), nil
	}
}

// Func adapts a function to the Source interface.
type Func func(ctx context.Context) ([]apod.Record, error)

func (f Func) Name() string { return "func" }

func (f Func) Fetch(ctx context.Context) ([]apod.Record, error) { return f(ctx) }

// Static is a Source returning a fixed collection.
type Static []apod.Record

func (s Static) Name() string { return "static" }

func (s Static) Fetch(context.Context) ([]apod.Record, error) {
	out := make([]apod.Record, len(s))
	copy(out, s)
	return out, nil
}
