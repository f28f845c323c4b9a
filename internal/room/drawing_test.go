package room

import (
	"testing"

	"github.com/andrewq/collabcode/internal/protocol"
)

func TestDrawingAddChangesCatchUp(t *testing.T) {
	d := newDrawing()
	d.Join("alice")
	d.Join("bob")

	seg1 := protocol.DrawSegment(`{"n":1}`)
	if reply := d.AddChanges("alice", []protocol.DrawSegment{seg1}); len(reply) != 0 {
		t.Fatalf("alice's own submit returned %d segments, want 0", len(reply))
	}

	reply := d.AddChanges("bob", nil)
	if len(reply) != 1 {
		t.Fatalf("bob's pull returned %d segments, want 1", len(reply))
	}
}

func TestDrawingAddChangesAlwaysAppendsRevision(t *testing.T) {
	d := newDrawing()
	d.Join("alice")

	before := d.lastRevisionNum()
	d.AddChanges("alice", nil)
	after := d.lastRevisionNum()

	if after != before+1 {
		t.Fatalf("lastRevisionNum after an empty AddChanges = %d, want %d (every call appends, even empty ones)", after, before+1)
	}
}
