package transport

import (
	"sync"

	"github.com/andrewq/collabcode/internal/protocol"
)

// hub fans out broadcast envelopes (currently only new-user-joined,
// §6) to every connection currently attached to one room. Replies to
// send-operation/send-drawing are NOT broadcast — §6 is explicit that
// those go only to the originating session — so the hub's scope is
// deliberately narrow: it is not a general pub/sub bus, just the one
// room-wide announcement the protocol needs.
type hub struct {
	mu    sync.Mutex
	conns map[string]chan *protocol.Envelope
}

func newHub() *hub {
	return &hub{conns: make(map[string]chan *protocol.Envelope)}
}

func (h *hub) register(sessionID string) <-chan *protocol.Envelope {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *protocol.Envelope, 16)
	h.conns[sessionID] = ch
	return ch
}

func (h *hub) unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.conns[sessionID]; ok {
		close(ch)
		delete(h.conns, sessionID)
	}
}

// broadcast delivers env to every registered connection (non-blocking:
// a slow/backed-up subscriber is skipped rather than stalling the
// broadcaster, the same trade kolabpad's Kolabpad.broadcast makes).
func (h *hub) broadcast(env *protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.conns {
		select {
		case ch <- env:
		default:
		}
	}
}

// hubRegistry lazily creates one hub per room id.
type hubRegistry struct {
	mu   sync.Mutex
	hubs map[string]*hub
}

func newHubRegistry() *hubRegistry {
	return &hubRegistry{hubs: make(map[string]*hub)}
}

func (r *hubRegistry) get(roomID string) *hub {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hubs[roomID]
	if !ok {
		h = newHub()
		r.hubs[roomID] = h
	}
	return h
}
