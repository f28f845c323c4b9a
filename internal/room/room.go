// Package room implements the session/room registry (§4.5, C6): a
// mapping from short room ids to Room instances, each owning one
// Document and one Drawing, plus the thin per-room client roster
// (display name, color) the transport adapter needs to answer
// `joined`/`submit-name` events.
//
// This generalizes original_source/editor.py's Editor class — same
// division of responsibility (one Document, one Drawing, one roster
// with a rotating color palette) — to the room-registry shape kolabpad
// uses for its own Document-per-id map (pkg/server/server.go's
// ServerState.documents).
package room

import (
	"fmt"
	"sync"

	"github.com/andrewq/collabcode/internal/document"
	"github.com/andrewq/collabcode/internal/protocol"
)

// clientInfo is a connected session's display name and assigned color.
type clientInfo struct {
	name  string
	color string
}

// Room owns one document, one drawing log, and the roster of sessions
// that have named themselves in it. All of Room's exported methods lock
// internally, serializing submits the way §5 requires for a single
// critical section per document.
type Room struct {
	mu      sync.Mutex
	doc     *document.Document
	drawing *Drawing
	clients map[string]clientInfo
	colors  colorAssigner
}

func newRoom() *Room {
	return &Room{
		doc:     document.New(),
		drawing: newDrawing(),
		clients: make(map[string]clientInfo),
	}
}

// Join registers session with both the document and the drawing log at
// their current tips. It does not assign a name/color — that happens
// on SubmitName, mirroring original_source/server.py's joined()
// handler (which only attaches the session, leaving naming to the
// later submit-name event).
func (r *Room) Join(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.doc.Join(sessionID)
	r.drawing.Join(sessionID)
}

// DrawingHistorySince returns every drawing segment committed after rev.
func (r *Room) DrawingHistorySince(rev int) []protocol.DrawSegment {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.drawing.ChangesSince(rev)
}

// Roster returns the current [name, color] roster, in the iteration
// order Go's map gives — order carries no meaning in the protocol.
func (r *Room) Roster() []protocol.RosterEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]protocol.RosterEntry, 0, len(r.clients))
	for _, info := range r.clients {
		out = append(out, protocol.RosterEntry{Name: info.name, Color: info.color})
	}
	return out
}

// SubmitName assigns sessionID the next rotating color and records its
// display name, returning the assigned color.
func (r *Room) SubmitName(sessionID, name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	color := r.colors.next()
	r.clients[sessionID] = clientInfo{name: name, color: color}
	return color
}

// SubmitOperations runs the document's central protocol operation
// (§4.4 Submit) under the room's lock.
func (r *Room) SubmitOperations(sessionID string, ops []protocol.WireOp) ([]protocol.WireOp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	decoded, err := protocol.DecodeClientOps(ops, sessionID)
	if err != nil {
		return nil, fmt.Errorf("room: decode operations: %w", err)
	}

	reply, err := r.doc.Submit(sessionID, decoded)
	if err != nil {
		return nil, fmt.Errorf("room: submit: %w", err)
	}

	return protocol.EncodeOps(reply), nil
}

// SubmitDrawing appends segments to the drawing channel and returns the
// segments sessionID had missed (§4.5: no transform, pure catch-up).
func (r *Room) SubmitDrawing(sessionID string, segments []protocol.DrawSegment) []protocol.DrawSegment {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.drawing.AddChanges(sessionID, segments)
}

// Text returns the room document's current materialized text.
func (r *Room) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.doc.Text()
}
