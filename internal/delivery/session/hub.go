package session

import (
	"context"
	"sync"
)

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Hub fans session updates out to websocket subscribers of this process.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe registers for updates of session id until ctx is done or the
// returned func is called.
func (h *Hub) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
	sub := &subscriber{ch: make(chan []byte, 8)}

	h.mu.Lock()
	set := h.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		h.subs[id] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subs, id)
				}
			}
			h.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}

// Publish never blocks: a subscriber whose buffer is full misses the update
// and catches up with the next one, which carries the whole session.
func (h *Hub) Publish(id string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[id] {
		select {
		case sub.ch <- payload:
		default:
		}
	}
}

func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[id])
}
