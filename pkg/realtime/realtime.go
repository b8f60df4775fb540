// Package realtime provides a lightweight in-process publish/subscribe hub
// used to fan out server-side notices (configuration reloads, shutdown) to
// every live page session.
//
// Delivery is best effort: a listener whose buffer is full misses the
// notice, the sender never blocks. There is no replay.
package realtime

import (
	"sync"
	"time"

	"github.com/rubiojr/apodview/pkg/source"
)

// Notice kinds.
const (
	NoticeSource   = "source"
	NoticeShutdown = "shutdown"
)

// Notice is one hub message. Source is set for NoticeSource.
type Notice struct {
	Type    string        `json:"type"`
	Source  source.Source `json:"-"`
	Message string        `json:"message,omitempty"`
	At      time.Time     `json:"at"`
}

// SourceNotice announces a new record source.
func SourceNotice(src source.Source) Notice {
	return Notice{Type: NoticeSource, Source: src, Message: src.Name(), At: time.Now().UTC()}
}

// ShutdownNotice announces that the server is going away.
func ShutdownNotice() Notice {
	return Notice{Type: NoticeShutdown, At: time.Now().UTC()}
}

// Hub is an in-memory fan-out dispatcher. Each registered listener
// receives notices via its own buffered channel. If a listener's channel
// buffer is full when a notice arrives, that notice is dropped for that
// listener only.
//
// The hub is concurrency-safe.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan Notice
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with per-listener buffer size.
// If bufSize <= 0, a default of 8 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 8
	}
	return &Hub{
		listeners: make(map[uint64]chan Notice),
		bufSize:   bufSize,
	}
}

// Register adds a new listener and returns (listenerID, receiveOnlyChannel).
// Callers must later Unregister(id) to release resources.
func (h *Hub) Register() (uint64, <-chan Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan Notice, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener with the given id and closes its channel.
// Unknown ids are ignored.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers n to all registered listeners and returns how many
// accepted it.
func (h *Hub) Broadcast(n Notice) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for _, ch := range h.listeners {
		select {
		case ch <- n:
			delivered++
		default:
			// Drop for slow listener.
		}
	}
	return delivered
}

// Size returns the current number of listeners.
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
