package loader

import (
	"context"
	"fmt"

	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/log"
	"github.com/rubiojr/apodview/pkg/source"
)

// State of the loader.
type State int

const (
	Idle State = iota
	Busy
)

func (s State) String() string {
	if s == Busy {
		return "busy"
	}
	return "idle"
}

// Trigger labels and busy message.
const (
	IdleLabel   = "Fetch Space Images"
	BusyLabel   = "Loading..."
	BusyMessage = "Loading data..."
)

// Orchestrator runs the fetch, sort and render cycle and owns the loading
// state and the gallery grid. It is not safe for concurrent use; callers
// either use FetchAndRender from one goroutine or drive Begin/Complete from
// a single event loop.
type Orchestrator struct {
	src      source.Source
	renderer *gallery.Renderer
	log      *log.Logger

	state   State
	grid    gallery.Grid
	records []apod.Record
	lastErr error

	onSuccess func()
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// OnSuccess registers fn to run after every successful load, once the busy
// state has been cleared.
func OnSuccess(fn func()) Option {
	return func(o *Orchestrator) { o.onSuccess = fn }
}

// New creates an idle Orchestrator showing the initial placeholder.
func New(src source.Source, renderer *gallery.Renderer, opts ...Option) *Orchestrator {
	if renderer == nil {
		renderer = gallery.NewRenderer(nil, nil)
	}
	o := &Orchestrator{
		src:      src,
		renderer: renderer,
		log:      log.For("loader"),
		grid:     gallery.InitialGrid(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetSource swaps the source used by future fetches.
func (o *Orchestrator) SetSource(src source.Source) {
	o.src = src
}

// Source returns the current source.
func (o *Orchestrator) Source() source.Source { return o.src }

// Begin enters the busy state. It returns false, changing nothing, when a
// fetch is already in flight.
func (o *Orchestrator) Begin() bool {
	if o.state == Busy {
		return false
	}
	o.state = Busy
	return true
}

// Complete finishes the fetch started by Begin with its outcome. On failure
// the gallery shows the error placeholder; on success the records are
// sorted newest first and rendered. The busy state is cleared exactly once
// whatever happens in between. Calls without a pending Begin are ignored.
func (o *Orchestrator) Complete(records []apod.Record, err error) {
	if o.state != Busy {
		return
	}

	ok := false
	defer func() {
		o.state = Idle
		if ok && o.onSuccess != nil {
			o.onSuccess()
		}
	}()

	if err != nil {
		o.fail(err)
		return
	}

	sorted := apod.Sorted(records)
	o.records = sorted
	o.grid = o.renderer.Render(sorted)
	o.lastErr = nil
	ok = true
	o.log.Infof("loaded %d records", len(sorted))
}

func (o *Orchestrator) fail(err error) {
	o.lastErr = err
	o.records = nil
	o.grid = gallery.ErrorGrid()
	o.log.Errorf("loading records: %v", err)
}

// Fetch performs the retrieval step only, against the current source.
func (o *Orchestrator) Fetch(ctx context.Context) ([]apod.Record, error) {
	return Retrieve(ctx, o.src)
}

// Retrieve fetches from src. Panics in the source are turned into errors.
// It touches no Orchestrator state and may run on any goroutine.
func Retrieve(ctx context.Context, src source.Source) (records []apod.Record, err error) {
	if src == nil {
		return nil, fmt.Errorf("no record source configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source %s panicked: %v", src.Name(), r)
		}
	}()
	log.For("loader").Debugf("fetching from %s", src.Name())
	return src.Fetch(ctx)
}

// FetchAndRender runs a whole cycle synchronously. Failures end up in the
// gallery and in LastError, never in the caller.
func (o *Orchestrator) FetchAndRender(ctx context.Context) {
	if !o.Begin() {
		return
	}
	records, err := o.Fetch(ctx)
	o.Complete(records, err)
}

// State returns the loading state.
func (o *Orchestrator) State() State { return o.state }

// TriggerDisabled reports whether the fetch control is disabled.
func (o *Orchestrator) TriggerDisabled() bool { return o.state == Busy }

// TriggerLabel is the current label of the fetch control.
func (o *Orchestrator) TriggerLabel() string {
	if o.state == Busy {
		return BusyLabel
	}
	return IdleLabel
}

// BusyVisible reports whether the busy indicator is shown.
func (o *Orchestrator) BusyVisible() bool { return o.state == Busy }

// BusyMessage is the status text of the busy indicator.
func (o *Orchestrator) BusyMessage() string { return BusyMessage }

// Grid returns the current gallery grid.
func (o *Orchestrator) Grid() gallery.Grid { return o.grid }

// Records returns the sorted records of the last successful load.
func (o *Orchestrator) Records() []apod.Record { return o.records }

// Record returns the record rendered at index i.
func (o *Orchestrator) Record(i int) (apod.Record, bool) {
	if i < 0 || i >= len(o.records) {
		return apod.Record{}, false
	}
	return o.records[i], true
}

// LastError returns the failure of the last load, nil after a success.
func (o *Orchestrator) LastError() error { return o.lastErr }
