package page

import (
	"context"

	"github.com/google/uuid"
	"github.com/rubiojr/apodview/pkg/facts"
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/loader"
	"github.com/rubiojr/apodview/pkg/log"
	"github.com/rubiojr/apodview/pkg/overlay"
)

// Listener receives a fresh view and the regions that changed after an
// event has been applied. It runs on the session goroutine.
type Listener func(v View, changed []Region)

// command is background work started by Dispatch. It reports back by
// posting events.
type command func(ctx context.Context, post func(Event) bool)

// Session is the state of one open page. All state changes happen in
// Dispatch; Run serializes events so that Dispatch only ever runs on one
// goroutine.
type Session struct {
	id       string
	loader   *loader.Orchestrator
	overlay  *overlay.Controller
	rotator  *facts.Rotator
	listener Listener
	log      *log.Logger

	fact         string
	factsStarted bool

	events  chan Event
	done    chan struct{}
	pending []command
}

// Option configures a Session.
type Option func(*Session)

// WithFacts sets the rotator started after the first successful fetch.
func WithFacts(r *facts.Rotator) Option {
	return func(s *Session) { s.rotator = r }
}

// WithListener sets the render listener.
func WithListener(fn Listener) Option {
	return func(s *Session) { s.listener = fn }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithOverlay replaces the overlay controller.
func WithOverlay(c *overlay.Controller) Option {
	return func(s *Session) { s.overlay = c }
}

// New creates a session around ld. The overlay uses the same date
// formatter and media registry as the gallery unless WithOverlay is given.
func New(ld *loader.Orchestrator, renderer *gallery.Renderer, opts ...Option) *Session {
	if renderer == nil {
		renderer = gallery.NewRenderer(nil, nil)
	}
	s := &Session{
		id:     uuid.NewString(),
		loader: ld,
		log:    log.For("page"),
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.overlay == nil {
		s.overlay = overlay.New(renderer.Formatter(), renderer.Media())
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Dispatch applies ev and returns the regions whose view changed. It must
// only be called from the goroutine that owns the session.
func (s *Session) Dispatch(ev Event) []Region {
	switch e := ev.(type) {
	case FetchRequested:
		if !s.loader.Begin() {
			return nil
		}
		src := s.loader.Source()
		s.pending = append(s.pending, func(ctx context.Context, post func(Event) bool) {
			records, err := loader.Retrieve(ctx, src)
			post(FetchCompleted{Records: records, Err: err})
		})
		return []Region{RegionControls}

	case FetchCompleted:
		if s.loader.State() != loader.Busy {
			return nil
		}
		s.loader.Complete(e.Records, e.Err)
		if e.Err == nil {
			s.startFacts()
		}
		return []Region{RegionControls, RegionGallery}

	case CardActivated:
		return s.activate(e.Index)

	case CardKeyPressed:
		if !IsActivationKey(e.Key) {
			return nil
		}
		return s.activate(e.Index)

	case OverlayClicked:
		if s.overlay.HandleClick(e.Closable) {
			return []Region{RegionOverlay}
		}
		return nil

	case CloseRequested:
		if s.overlay.Close() {
			return []Region{RegionOverlay}
		}
		return nil

	case KeyPressed:
		if s.overlay.HandleKey(e.Key) {
			return []Region{RegionOverlay}
		}
		return nil

	case FactShown:
		if e.Fact == s.fact {
			return nil
		}
		s.fact = e.Fact
		return []Region{RegionFact}

	case SourceChanged:
		if e.Source != nil {
			s.loader.SetSource(e.Source)
			s.log.Infof("session %s now uses %s", s.id, e.Source.Name())
		}
		return nil
	}
	return nil
}

func (s *Session) activate(index int) []Region {
	rec, ok := s.loader.Record(index)
	if !ok {
		s.log.Debugf("ignoring activation of unknown card %d", index)
		return nil
	}
	s.overlay.Open(rec)
	return []Region{RegionOverlay}
}

func (s *Session) startFacts() {
	if s.factsStarted || s.rotator == nil {
		return
	}
	s.factsStarted = true
	rot := s.rotator
	s.pending = append(s.pending, func(ctx context.Context, post func(Event) bool) {
		rot.Run(ctx, func(fact string) { post(FactShown{Fact: fact}) })
	})
}

// View returns a snapshot of the current state.
func (s *Session) View() View {
	return View{
		Session: s.id,
		Controls: Controls{
			Label:       s.loader.TriggerLabel(),
			Disabled:    s.loader.TriggerDisabled(),
			Busy:        s.loader.BusyVisible(),
			BusyMessage: s.loader.BusyMessage(),
		},
		Gallery: s.loader.Grid(),
		Overlay: Overlay{
			Open:         s.overlay.IsOpen(),
			AriaHidden:   s.overlay.AriaHidden(),
			ScrollLocked: s.overlay.ScrollLocked(),
			Detail:       s.overlay.Detail(),
		},
		Fact: s.fact,
	}
}

// Post queues ev for the session goroutine. It returns false once the
// session has stopped.
func (s *Session) Post(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} { return s.done }

// Run processes events until ctx is done. The listener first receives the
// whole page, then the changed regions after each event. Background work
// started by events is bound to ctx.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	post := func(ev Event) bool {
		select {
		case s.events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	s.notify(AllRegions)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			changed := s.Dispatch(ev)
			for _, cmd := range s.pending {
				go cmd(ctx, post)
			}
			s.pending = nil
			s.notify(changed)
		}
	}
}

func (s *Session) notify(changed []Region) {
	if len(changed) == 0 || s.listener == nil {
		return
	}
	s.listener(s.View(), changed)
}
