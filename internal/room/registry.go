package room

import (
	"crypto/rand"
	"fmt"
	"sync"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Registry maps short room ids to Rooms. It is the server-process-
// lifetime-bound home for all "global mutable registry" state §9 asks
// to be realized behind the concurrency primitive of §5 — one mutex
// for membership (create/lookup), independent per-Room locking for
// everything that happens inside a room.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create allocates a new Room under a freshly generated id, using
// rejection sampling against the existing key set (§4.5) so ids never
// collide even under concurrent creation.
func (reg *Registry) Create() (string, *Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for attempt := 0; attempt < 100; attempt++ {
		id, err := RandomID(5)
		if err != nil {
			return "", nil, fmt.Errorf("room: generate id: %w", err)
		}
		if _, exists := reg.rooms[id]; exists {
			continue
		}
		r := newRoom()
		reg.rooms[id] = r
		return id, r, nil
	}
	return "", nil, fmt.Errorf("room: exhausted id generation attempts")
}

// Get looks up a room by id.
func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	r, ok := reg.rooms[id]
	return r, ok
}

// RandomID returns a random alphanumeric string of the given length,
// drawn via crypto/rand the way pkg/server/secret.go draws OTP secrets
// — the pack ships no dedicated short-id generator, so this one
// concern stays on the standard library (see DESIGN.md). Exported so
// the transport layer can mint session ids with the same primitive.
func RandomID(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(out), nil
}
