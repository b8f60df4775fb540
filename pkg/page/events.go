package page

import (
	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/source"
)

// Event is one input to a Session. The set of events is closed: only the
// types in this file implement it.
type Event interface {
	event()
}

// FetchRequested is sent when the fetch trigger is activated.
type FetchRequested struct{}

// FetchCompleted carries the outcome of a background fetch.
type FetchCompleted struct {
	Records []apod.Record
	Err     error
}

// CardActivated is a pointer activation of the card at Index.
type CardActivated struct {
	Index int
}

// CardKeyPressed is a key press while the card at Index has focus.
type CardKeyPressed struct {
	Index int
	Key   string
}

// OverlayClicked is a click inside the overlay. Closable is set when the
// click target carries the closable marker.
type OverlayClicked struct {
	Closable bool
}

// CloseRequested is an activation of the overlay close control.
type CloseRequested struct{}

// KeyPressed is a document-level key press.
type KeyPressed struct {
	Key string
}

// FactShown is posted by the fact rotator.
type FactShown struct {
	Fact string
}

// SourceChanged replaces the record source for future fetches.
type SourceChanged struct {
	Source source.Source
}

func (FetchRequested) event() {}
func (FetchCompleted) event() {}
func (CardActivated) event()  {}
func (CardKeyPressed) event() {}
func (OverlayClicked) event() {}
func (CloseRequested) event() {}
func (KeyPressed) event()     {}
func (FactShown) event()      {}
func (SourceChanged) event()  {}

// activationKeys are the keys that activate a focused card.
var activationKeys = map[string]bool{
	"Enter":    true,
	" ":        true,
	"Space":    true,
	"Spacebar": true,
}

// IsActivationKey reports whether key activates a focused card.
func IsActivationKey(key string) bool {
	return activationKeys[key]
}
