package overlay

import (
	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/format"
	"github.com/rubiojr/apodview/pkg/render"
)

// State of the detail overlay.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// EscapeKey is the key name that dismisses the overlay.
const EscapeKey = "Escape"

// Detail is the content shown inside the overlay panel.
type Detail struct {
	Title       string
	Date        string
	Explanation string
	Credit      string
	Media       render.Media
}

// Controller is the two-state detail overlay. It is not safe for
// concurrent use; the owning page session serializes access.
type Controller struct {
	state  State
	active *apod.Record
	detail Detail

	dates *format.Formatter
	media *render.Registry

	// onRelease is called with the media being dropped on close or when a
	// new record replaces the active one.
	onRelease func(render.Media)
}

// Option configures a Controller.
type Option func(*Controller)

// WithReleaseHook registers fn to observe released media.
func WithReleaseHook(fn func(render.Media)) Option {
	return func(c *Controller) { c.onRelease = fn }
}

// New creates a closed Controller. Nil arguments select the en-US formatter
// and the global media registry.
func New(dates *format.Formatter, media *render.Registry, opts ...Option) *Controller {
	if dates == nil {
		dates = format.NewFormatter("")
	}
	if media == nil {
		media = render.GetGlobalRegistry()
	}
	c := &Controller{dates: dates, media: media}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open shows rec, replacing the active record if there is one.
func (c *Controller) Open(rec apod.Record) {
	if c.state == Open {
		c.release()
	}
	r := rec
	c.active = &r
	c.detail = Detail{
		Title:       rec.DisplayTitle(),
		Date:        c.dates.Format(rec.Date),
		Explanation: rec.Explanation,
		Credit:      rec.Credit(),
		Media:       c.media.Detail(rec),
	}
	c.state = Open
}

// Close hides the overlay and releases its media. It returns false, and
// does nothing, when the overlay is already closed.
func (c *Controller) Close() bool {
	if c.state == Closed {
		return false
	}
	c.release()
	c.active = nil
	c.detail = Detail{}
	c.state = Closed
	return true
}

func (c *Controller) release() {
	m := c.detail.Media
	c.detail.Media = render.Media{}
	if c.onRelease != nil && !m.IsZero() {
		c.onRelease(m)
	}
}

// HandleClick routes a click inside the overlay. Only targets carrying the
// closable marker dismiss it.
func (c *Controller) HandleClick(closable bool) bool {
	if !closable {
		return false
	}
	return c.Close()
}

// HandleKey routes a document-level key press.
func (c *Controller) HandleKey(key string) bool {
	if key != EscapeKey {
		return false
	}
	return c.Close()
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// IsOpen reports whether the overlay is shown.
func (c *Controller) IsOpen() bool { return c.state == Open }

// Active returns the displayed record.
func (c *Controller) Active() (apod.Record, bool) {
	if c.active == nil {
		return apod.Record{}, false
	}
	return *c.active, true
}

// Detail returns the overlay content. It is empty while closed.
func (c *Controller) Detail() Detail { return c.detail }

// ScrollLocked reports whether background scrolling is suppressed.
func (c *Controller) ScrollLocked() bool { return c.state == Open }

// AriaHidden is the aria-hidden attribute value for the overlay.
func (c *Controller) AriaHidden() string {
	if c.state == Open {
		return "false"
	}
	return "true"
}
