// Package feed publishes round results over HTTP and websockets.
package feed

import (
	"sync"

	"github.com/Faultbox/roulette/internal/game"
)

// History keeps the most recent results in a fixed-size ring.
type History struct {
	mu    sync.RWMutex
	buf   []game.Event
	next  int
	count int
}

// NewHistory returns a history holding up to size events. size below 1 is
// treated as 1.
func NewHistory(size int) *History {
	return &History{buf: make([]game.Event, max(size, 1))}
}

// Publish records ev, evicting the oldest event when full.
func (h *History) Publish(ev game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.next] = ev
	h.next = (h.next + 1) % len(h.buf)
	h.count = min(h.count+1, len(h.buf))
}

// Len returns the number of stored events.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Recent returns up to limit events, newest first. limit <= 0 returns all.
func (h *History) Recent(limit int) []game.Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := h.count
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]game.Event, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, h.buf[(h.next-i+len(h.buf))%len(h.buf)])
	}
	return out
}
