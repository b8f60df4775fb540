package gallery

import (
	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/format"
	"github.com/rubiojr/apodview/pkg/render"
)

// Placeholder messages.
const (
	EmptyMessage   = "No items found."
	ErrorMessage   = "Error loading data. Try again later."
	InitialMessage = "Press \"Fetch Space Images\" to load the gallery."
	EmptyIcon      = "🛰️"
	InitialIcon    = "🔭"
)

// Card is one gallery entry.
type Card struct {
	// Index is the card position in the rendered order; activation events
	// refer to cards by index.
	Index     int
	Title     string
	Date      string
	MediaType apod.MediaType
	Thumbnail render.Thumbnail
}

// Placeholder replaces the grid when there is nothing to show.
type Placeholder struct {
	Icon    string
	Message string
	Error   bool
}

// Grid is the visual state of the gallery area. Exactly one of Cards or
// Placeholder is populated.
type Grid struct {
	Cards       []Card
	Placeholder *Placeholder
}

// Len returns the number of cards.
func (g Grid) Len() int { return len(g.Cards) }

// HasPlaceholder reports whether the grid shows a placeholder.
func (g Grid) HasPlaceholder() bool { return g.Placeholder != nil }

// Renderer turns ordered records into a Grid.
type Renderer struct {
	dates *format.Formatter
	media *render.Registry
}

// NewRenderer creates a Renderer. Nil arguments select the en-US formatter
// and the global media registry.
func NewRenderer(dates *format.Formatter, media *render.Registry) *Renderer {
	if dates == nil {
		dates = format.NewFormatter("")
	}
	if media == nil {
		media = render.GetGlobalRegistry()
	}
	return &Renderer{dates: dates, media: media}
}

// Render builds a complete grid for records, keeping their order. An empty
// input renders the "no items" placeholder.
func (r *Renderer) Render(records []apod.Record) Grid {
	if len(records) == 0 {
		return Grid{Placeholder: &Placeholder{Icon: EmptyIcon, Message: EmptyMessage}}
	}

	cards := make([]Card, len(records))
	for i, rec := range records {
		cards[i] = Card{
			Index:     i,
			Title:     rec.DisplayTitle(),
			Date:      r.dates.Format(rec.Date),
			MediaType: rec.Kind(),
			Thumbnail: r.media.Thumbnail(rec),
		}
	}
	return Grid{Cards: cards}
}

// Formatter returns the date formatter used for cards.
func (r *Renderer) Formatter() *format.Formatter { return r.dates }

// Media returns the media registry used for thumbnails.
func (r *Renderer) Media() *render.Registry { return r.media }

// ErrorGrid is shown when the records could not be loaded.
func ErrorGrid() Grid {
	return Grid{Placeholder: &Placeholder{Message: ErrorMessage, Error: true}}
}

// InitialGrid is shown before the first fetch.
func InitialGrid() Grid {
	return Grid{Placeholder: &Placeholder{Icon: InitialIcon, Message: InitialMessage}}
}
