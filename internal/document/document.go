// Package document implements the per-document revision log and
// synchronization protocol (§4.4, C5): it drives ot.TransformMultiple
// against the committed revision history and the ot.Buffer the
// revisions fold into.
//
// This is the Go generalization of original_source/document.py's
// Document class, restructured around the row/column ot.Operation
// model instead of that file's flat-offset one.
package document

import (
	"fmt"

	"github.com/andrewq/collabcode/internal/ot"
)

// Document owns one revision log, one text buffer, and the per-session
// base-revision bookkeeping the synchronization protocol needs. A zero
// value is not valid; use New.
//
// Concurrency: none of this package's types are safe for concurrent
// use on their own. §5 requires that submits for one document execute
// as a single critical section; callers (internal/room.Room) provide
// that serialization. This mirrors kolabpad's Kolabpad type, which
// takes the lock itself — here the lock lives one layer up, at the
// room, because the room also owns the sibling drawing log that must
// serialize with the same client-roster bookkeeping.
type Document struct {
	revisions []Revision
	clients   map[string]int // session id -> last acknowledged revision_num
	text      *ot.Buffer
}

// New returns an empty Document: no revisions, no clients, empty text.
func New() *Document {
	return &Document{
		revisions: make([]Revision, 0),
		clients:   make(map[string]int),
		text:      ot.NewBuffer(),
	}
}

// Text returns the current materialized text.
func (d *Document) Text() string {
	return d.text.Render()
}

// LastRevisionNum returns the index of the most recent revision, or -1
// if the log is empty.
func (d *Document) LastRevisionNum() int {
	return len(d.revisions) - 1
}

// Join registers session as a client, snapping it to the current tip.
// A repeat join discards whatever base revision the session previously
// held — it is idempotent, not additive.
func (d *Document) Join(sessionID string) {
	d.clients[sessionID] = d.LastRevisionNum()
}

// IsOnLatest reports whether session has acknowledged the current tip.
func (d *Document) IsOnLatest(sessionID string) bool {
	return d.clients[sessionID] == d.LastRevisionNum()
}

// ChangesSince returns every operation committed in revisions
// rev+1..LastRevisionNum, in revision order then intra-revision order.
// rev must be >= -1.
func (d *Document) ChangesSince(rev int) []ot.Operation {
	var out []ot.Operation
	for i := rev + 1; i <= d.LastRevisionNum(); i++ {
		out = append(out, d.revisions[i].Changes...)
	}
	return out
}

// Submit is the central protocol operation (§4.4). sessionID must have
// already Join'd; an unknown session is a programming error from the
// transport adapter and is reported as an error without mutating state.
//
// Empty clientOps is a pull: the session's base advances to the tip and
// every committed operation since its old base is returned for replay.
//
// A non-empty clientOps is transformed against everything committed
// since the session's base (ot.TransformMultiple), the server-side half
// is appended as a new revision and folded into the text buffer, and
// the client-side half — what the session must additionally replay on
// top of its own already-applied ops — is returned.
func (d *Document) Submit(sessionID string, clientOps []ot.Operation) ([]ot.Operation, error) {
	base, ok := d.clients[sessionID]
	if !ok {
		return nil, fmt.Errorf("document: submit from unjoined session %q", sessionID)
	}

	concurrent := d.ChangesSince(base)

	if len(clientOps) == 0 {
		d.clients[sessionID] = d.LastRevisionNum()
		return concurrent, nil
	}

	replyToClient, toCommit := ot.TransformMultiple(clientOps, concurrent)

	newRevisionNum := len(d.revisions)
	d.revisions = append(d.revisions, Revision{
		Changes:     toCommit,
		Author:      sessionID,
		RevisionNum: newRevisionNum,
	})

	for _, op := range toCommit {
		d.text.Apply(op)
	}

	d.clients[sessionID] = newRevisionNum

	return replyToClient, nil
}
