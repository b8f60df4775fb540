package web

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rubiojr/apodview/pkg/api"
	"github.com/rubiojr/apodview/pkg/facts"
	"github.com/rubiojr/apodview/pkg/format"
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/loader"
	"github.com/rubiojr/apodview/pkg/log"
	"github.com/rubiojr/apodview/pkg/page"
	"github.com/rubiojr/apodview/pkg/realtime"
	"github.com/rubiojr/apodview/pkg/render"
	"github.com/rubiojr/apodview/pkg/source"
)

// Options configures a Server.
type Options struct {
	Source       source.Source
	Locale       string
	Facts        []string
	FactInterval time.Duration
	// Hub receives server notices; a private hub is created when nil.
	Hub *realtime.Hub
}

// Server is the web surface: the page, the page-session WebSocket, the
// JSON API and static assets.
type Server struct {
	mu  sync.RWMutex
	src source.Source

	renderer     *gallery.Renderer
	views        *Views
	api          *api.Server
	hub          *realtime.Hub
	facts        []string
	factInterval time.Duration
	upgrader     websocket.Upgrader
	sessions     atomic.Int64
	log          *log.Logger
}

// NewServer creates a Server.
func NewServer(opts Options) (*Server, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("no record source configured")
	}
	views, err := NewViews()
	if err != nil {
		return nil, err
	}
	hub := opts.Hub
	if hub == nil {
		hub = realtime.NewHub(0)
	}

	s := &Server{
		src:          opts.Source,
		renderer:     gallery.NewRenderer(format.NewFormatter(opts.Locale), render.GetGlobalRegistry()),
		views:        views,
		hub:          hub,
		facts:        opts.Facts,
		factInterval: opts.FactInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log: log.For("web"),
	}
	s.api = api.NewServer(s.Source, s.Sessions)
	return s, nil
}

// Source returns the record source new sessions start with.
func (s *Server) Source() source.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src
}

// SetSource replaces the record source and tells live sessions about it.
func (s *Server) SetSource(src source.Source) {
	s.mu.Lock()
	s.src = src
	s.mu.Unlock()
	n := s.hub.Broadcast(realtime.SourceNotice(src))
	s.log.Infof("source changed to %s (%d live sessions notified)", src.Name(), n)
}

// Sessions returns the number of live page sessions.
func (s *Server) Sessions() int {
	return int(s.sessions.Load())
}

// Hub returns the notice hub.
func (s *Server) Hub() *realtime.Hub { return s.hub }

// NotifyShutdown tells live sessions that the server is stopping.
func (s *Server) NotifyShutdown() {
	s.hub.Broadcast(realtime.ShutdownNotice())
}

// Handler returns the HTTP handler with all routes. Everything except the
// WebSocket endpoint is gzip compressed when the client accepts it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.api.RegisterRoutes(mux)
	mux.HandleFunc("GET /{$}", s.HandlePage)
	mux.HandleFunc("GET /static/", s.handleStatic)

	root := http.NewServeMux()
	root.HandleFunc("GET /ws", s.HandleWS)
	root.Handle("/", gzhttp.GzipHandler(mux))
	return root
}

// newSession builds a page session on the current source.
func (s *Server) newSession(opts ...page.Option) *page.Session {
	ld := loader.New(s.Source(), s.renderer)
	if len(s.facts) > 0 {
		rot, err := facts.New(s.facts, s.factInterval)
		if err != nil {
			s.log.Warnf("fact rotator disabled: %v", err)
		} else {
			opts = append(opts, page.WithFacts(rot))
		}
	}
	return page.New(ld, s.renderer, opts...)
}

// HandlePage renders the initial page.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	view := s.newSession().View()
	component, err := s.views.Page(r.Context(), view)
	if err != nil {
		http.Error(w, fmt.Sprintf("Template error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, fmt.Sprintf("Template error: %v", err), http.StatusInternalServerError)
	}
}
