// file: internals/realtime/hub.go
package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// Hub adalah registry subscriber in-process, fallback dev tanpa Redis dan
// backend untuk tes. Channel privat per user; kirim non-blocking, at-most-once:
// subscriber dengan buffer penuh kehilangan pesan dan harus reconcile lewat poll.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID][]chan Envelope
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID][]chan Envelope)}
}

// Subscribe mendaftarkan channel untuk satu user. Fungsi kedua melepas subscription.
func (h *Hub) Subscribe(userID uuid.UUID, buffer int) (<-chan Envelope, func()) {
	if buffer <= 0 {
		buffer = 8
	}
	ch := make(chan Envelope, buffer)

	h.mu.Lock()
	h.subs[userID] = append(h.subs[userID], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.subs[userID]
		for i, c := range list {
			if c == ch {
				h.subs[userID] = append(list[:i], list[i+1:]...)
				close(ch)
				break
			}
		}
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
	}
	return ch, cancel
}

func (h *Hub) Publish(ctx context.Context, userID uuid.UUID, payload NotificationPayload) error {
	env := Envelope{Event: constants.RealtimeEventName, Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[userID] {
		select {
		case ch <- env:
		default:
			// subscriber penuh: drop, klien reconcile lewat poll
		}
	}
	return nil
}
