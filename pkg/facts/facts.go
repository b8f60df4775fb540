package facts

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rubiojr/apodview/pkg/log"
)

// DefaultInterval is the time between two facts.
const DefaultInterval = 10 * time.Second

// DefaultFacts is the built-in fact list.
var DefaultFacts = []string{
	"The Milky Way galaxy is estimated to contain 100-400 billion stars.",
	"A day on Venus is longer than its year.",
	"Neutron stars are so dense that a sugar-cube-sized amount of neutron star material would weigh about a billion tons on Earth.",
	"The largest volcano in the solar system is Olympus Mons on Mars, which is about 13.6 miles (22 kilometers) high.",
	"Saturn's rings are made primarily of ice particles, with a smaller amount of rocky debris and dust.",
	"The Hubble Space Telescope has helped determine the age of the universe to be approximately 13.8 billion years.",
	"Jupiter's Great Red Spot is a giant storm that has been raging for at least 400 years.",
	"The footprints left by astronauts on the Moon will remain there for millions of years due to the lack of atmosphere and weather.",
}

// ErrNoFacts is returned by New for an empty fact list.
var ErrNoFacts = errors.New("fact list is empty")

// Ticker is the part of time.Ticker the rotator needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Rotator shows a random fact at a fixed interval.
type Rotator struct {
	facts     []string
	interval  time.Duration
	rand      *rand.Rand
	newTicker func(time.Duration) Ticker
	log       *log.Logger
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithRand sets the random source used to pick facts.
func WithRand(r *rand.Rand) Option {
	return func(rt *Rotator) { rt.rand = r }
}

// WithTicker replaces the ticker constructor.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(rt *Rotator) { rt.newTicker = fn }
}

// New creates a Rotator. A non-positive interval selects DefaultInterval.
func New(facts []string, interval time.Duration, opts ...Option) (*Rotator, error) {
	if len(facts) == 0 {
		return nil, ErrNoFacts
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	r := &Rotator{
		facts:     append([]string(nil), facts...),
		interval:  interval,
		newTicker: newTimeTicker,
		log:       log.For("facts"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rand == nil {
		r.rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return r, nil
}

// Interval returns the rotation interval.
func (r *Rotator) Interval() time.Duration { return r.interval }

// Facts returns a copy of the fact list.
func (r *Rotator) Facts() []string { return append([]string(nil), r.facts...) }

// Pick returns one fact chosen uniformly at random.
func (r *Rotator) Pick() string {
	return r.facts[r.rand.IntN(len(r.facts))]
}

// Run calls show with a fact right away and then once per interval until
// ctx is done. Run does not return before that.
func (r *Rotator) Run(ctx context.Context, show func(string)) {
	t := r.newTicker(r.interval)
	defer t.Stop()

	r.display(show)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			r.display(show)
		}
	}
}

func (r *Rotator) display(show func(string)) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Errorf("displaying fact: %v", p)
		}
	}()
	show(r.Pick())
}
