package page

import (
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/overlay"
)

// Region names an independently re-rendered part of the page.
type Region string

const (
	RegionControls Region = "controls"
	RegionGallery  Region = "gallery"
	RegionOverlay  Region = "overlay"
	RegionFact     Region = "fact"
)

// AllRegions lists every region in page order.
var AllRegions = []Region{RegionControls, RegionGallery, RegionOverlay, RegionFact}

// Controls is the fetch trigger and busy indicator.
type Controls struct {
	Label       string
	Disabled    bool
	Busy        bool
	BusyMessage string
}

// BusyAriaHidden is the aria-hidden value of the busy indicator.
func (c Controls) BusyAriaHidden() string {
	if c.Busy {
		return "false"
	}
	return "true"
}

// Overlay is the visible state of the detail overlay.
type Overlay struct {
	Open         bool
	AriaHidden   string
	ScrollLocked bool
	Detail       overlay.Detail
}

// View is a snapshot of everything the page shows.
type View struct {
	Session  string
	Controls Controls
	Gallery  gallery.Grid
	Overlay  Overlay
	Fact     string
}
