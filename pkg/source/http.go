package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/log"
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// HTTP fetches the collection with a single GET.
type HTTP struct {
	url       string
	userAgent string
	client    *http.Client
	log       *log.Logger
}

// NewHTTP creates an HTTP source. cfg is assumed validated.
func NewHTTP(cfg Config) *HTTP {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// Content-Encoding is negotiated and decoded here.
	transport.DisableCompression = true

	return &HTTP{
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		log:       log.For("source"),
	}
}

func (h *HTTP) Name() string { return h.url }

// Fetch retrieves and decodes the collection.
func (h *HTTP) Fetch(ctx context.Context) ([]apod.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	h.log.Debugf("GET %s", h.url)
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", h.url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			h.log.Warnf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := apod.Decode(io.LimitReader(body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", h.url, err)
	}
	h.log.Debugf("decoded %d records from %s", len(records), h.url)
	return records, nil
}

func decodeBody(r io.Reader, encoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return io.NopCloser(r), nil
	case "gzip":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return gz, nil
	case "zstd":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}
