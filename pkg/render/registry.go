package render

import (
	"sync"

	"github.com/rubiojr/apodview/pkg/apod"
)

// MediaRenderer decides how one kind of record is shown: the thumbnail on
// its gallery card and the large media in the detail overlay.
type MediaRenderer interface {
	CanRender(rec apod.Record) bool
	Thumbnail(rec apod.Record) Thumbnail
	Detail(rec apod.Record) Media
	// MediaType returns the media type handled, "" for fallbacks.
	MediaType() apod.MediaType
}

var (
	globalMu        sync.Mutex
	globalRenderers []MediaRenderer
)

// RegisterRenderer adds a renderer to the set picked up by GetGlobalRegistry.
// Built-in renderers register themselves from init().
func RegisterRenderer(renderer MediaRenderer) {
	if renderer == nil {
		return
	}
	globalMu.Lock()
	globalRenderers = append(globalRenderers, renderer)
	globalMu.Unlock()
}

// GetRegisteredRenderers returns a copy of the auto-registered renderers.
func GetRegisteredRenderers() []MediaRenderer {
	globalMu.Lock()
	defer globalMu.Unlock()
	out := make([]MediaRenderer, len(globalRenderers))
	copy(out, globalRenderers)
	return out
}

// Registry is an ordered set of MediaRenderers plus a fallback used when no
// renderer claims a record.
type Registry struct {
	mu        sync.RWMutex
	renderers []MediaRenderer
	fallback  MediaRenderer
}

// NewRegistry creates an empty registry with the default fallback.
func NewRegistry() *Registry {
	return &Registry{fallback: &DefaultRenderer{}}
}

// GetGlobalRegistry builds a registry from all auto-registered renderers.
// Each call returns a fresh snapshot.
func GetGlobalRegistry() *Registry {
	reg := NewRegistry()
	for _, r := range GetRegisteredRenderers() {
		reg.Register(r)
	}
	return reg
}

// Register appends a renderer. Safe for concurrent use.
func (r *Registry) Register(renderer MediaRenderer) {
	if renderer == nil {
		return
	}
	r.mu.Lock()
	r.renderers = append(r.renderers, renderer)
	r.mu.Unlock()
}

// SetFallback overrides the renderer used when nothing else matches.
func (r *Registry) SetFallback(renderer MediaRenderer) {
	r.mu.Lock()
	r.fallback = renderer
	r.mu.Unlock()
}

// For returns the first renderer that can render rec, or the fallback.
func (r *Registry) For(rec apod.Record) MediaRenderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, renderer := range r.renderers {
		if renderer.CanRender(rec) {
			return renderer
		}
	}
	return r.fallback
}

// Thumbnail renders the card thumbnail for rec.
func (r *Registry) Thumbnail(rec apod.Record) Thumbnail {
	if ren := r.For(rec); ren != nil {
		return ren.Thumbnail(rec)
	}
	return Thumbnail{Alt: rec.AltText()}
}

// Detail renders the overlay media for rec.
func (r *Registry) Detail(rec apod.Record) Media {
	if ren := r.For(rec); ren != nil {
		return ren.Detail(rec)
	}
	return Media{}
}

// MediaTypes lists the media types handled by registered renderers.
func (r *Registry) MediaTypes() []apod.MediaType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]apod.MediaType, 0, len(r.renderers))
	seen := make(map[apod.MediaType]struct{})
	for _, ren := range r.renderers {
		t := ren.MediaType()
		if t == "" {
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
