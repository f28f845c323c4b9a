package room

import "github.com/andrewq/collabcode/internal/protocol"

// drawingRevision is one author's append to the drawing log.
type drawingRevision struct {
	segments []protocol.DrawSegment
	author   string
}

// Drawing is the line-drawing channel's history: a verbatim,
// append-only pass-through log with per-client base-revision tracking
// analogous to Document's, but with no Operation Transformation — it
// mirrors original_source/drawing.py's Drawing class exactly (§4.5).
type Drawing struct {
	revisions []drawingRevision
	clients   map[string]int
}

func newDrawing() *Drawing {
	return &Drawing{
		revisions: make([]drawingRevision, 0),
		clients:   make(map[string]int),
	}
}

// Join registers session at the current tip.
func (d *Drawing) Join(sessionID string) {
	d.clients[sessionID] = d.lastRevisionNum()
}

func (d *Drawing) lastRevisionNum() int {
	return len(d.revisions) - 1
}

// ChangesSince returns every segment appended after rev.
func (d *Drawing) ChangesSince(rev int) []protocol.DrawSegment {
	var out []protocol.DrawSegment
	for i := rev + 1; i <= d.lastRevisionNum(); i++ {
		out = append(out, d.revisions[i].segments...)
	}
	return out
}

// AddChanges appends segments (which may be empty, for a pure pull) and
// returns every segment the session had missed since its base —
// exactly original_source/drawing.py's add_changes: no transform, pure
// log append and catch-up.
func (d *Drawing) AddChanges(sessionID string, segments []protocol.DrawSegment) []protocol.DrawSegment {
	base := d.clients[sessionID]
	changesSince := d.ChangesSince(base)

	d.revisions = append(d.revisions, drawingRevision{segments: segments, author: sessionID})
	d.clients[sessionID] = d.lastRevisionNum()

	return changesSince
}
