package document

import (
	"testing"

	"github.com/andrewq/collabcode/internal/ot"
)

func TestDocumentSimpleInsertConvergence(t *testing.T) {
	d := New()
	d.Join("alice")
	d.Join("bob")

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 0}, Character: 'h', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 0, Column: 1}, Character: 'i', By: "alice"},
	}); err != nil {
		t.Fatalf("alice submit: %v", err)
	}

	bobReply, err := d.Submit("bob", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 0}, Character: 'x', By: "bob"},
	})
	if err != nil {
		t.Fatalf("bob submit: %v", err)
	}
	if len(bobReply) != 2 {
		t.Fatalf("bob reply has %d ops, want 2 (alice's catch-up)", len(bobReply))
	}

	if got, want := d.Text(), "hix"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentNewlineSplitsRow(t *testing.T) {
	d := New()
	d.Join("alice")

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 0}, Character: 'a', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 0, Column: 1}, Character: 'b', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 0, Column: 1}, Character: '\n', By: "alice"},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if got, want := d.Text(), "a\nb"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentRowJoinDelete(t *testing.T) {
	d := New()
	d.Join("alice")

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 0}, Character: 'a', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 0, Column: 1}, Character: '\n', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 1, Column: 0}, Character: 'b', By: "alice"},
	}); err != nil {
		t.Fatalf("build: %v", err)
	}

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Delete{Position: ot.Position{Row: 1, Column: ot.RowJoin}, By: "alice"},
	}); err != nil {
		t.Fatalf("join delete: %v", err)
	}

	if got, want := d.Text(), "ab"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentConcurrentInsertShiftedByDelete(t *testing.T) {
	d := New()
	d.Join("alice")
	d.Join("bob")

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 0}, Character: 'a', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 0, Column: 1}, Character: 'b', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 0, Column: 2}, Character: 'c', By: "alice"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	d.clients["bob"] = d.LastRevisionNum()

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Delete{Position: ot.Position{Row: 0, Column: 0}, By: "alice"},
	}); err != nil {
		t.Fatalf("alice delete: %v", err)
	}

	bobReply, err := d.Submit("bob", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 2}, Character: 'z', By: "bob"},
	})
	if err != nil {
		t.Fatalf("bob submit: %v", err)
	}
	if len(bobReply) != 1 {
		t.Fatalf("bob reply has %d ops, want 1 (alice's delete)", len(bobReply))
	}

	if got, want := d.Text(), "bzc"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentDuplicateDeleteCollapses(t *testing.T) {
	d := New()
	d.Join("alice")
	d.Join("bob")

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 0}, Character: 'a', By: "alice"},
		ot.Insert{Position: ot.Position{Row: 0, Column: 1}, Character: 'b', By: "alice"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	d.clients["bob"] = d.LastRevisionNum()

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Delete{Position: ot.Position{Row: 0, Column: 0}, By: "alice"},
	}); err != nil {
		t.Fatalf("alice delete: %v", err)
	}

	bobReply, err := d.Submit("bob", []ot.Operation{
		ot.Delete{Position: ot.Position{Row: 0, Column: 0}, By: "bob"},
	})
	if err != nil {
		t.Fatalf("bob delete: %v", err)
	}
	if len(bobReply) != 1 {
		t.Fatalf("bob reply has %d ops, want 1", len(bobReply))
	}

	if got, want := d.Text(), "b"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentEmptySubmitIsPull(t *testing.T) {
	d := New()
	d.Join("alice")
	d.Join("bob")

	if _, err := d.Submit("alice", []ot.Operation{
		ot.Insert{Position: ot.Position{Row: 0, Column: 0}, Character: 'x', By: "alice"},
	}); err != nil {
		t.Fatalf("alice submit: %v", err)
	}

	reply, err := d.Submit("bob", nil)
	if err != nil {
		t.Fatalf("bob pull: %v", err)
	}
	if len(reply) != 1 {
		t.Fatalf("pull reply has %d ops, want 1", len(reply))
	}
	if !d.IsOnLatest("bob") {
		t.Fatal("bob should be on latest revision after a pull")
	}
}

func TestDocumentSubmitFromUnjoinedSessionErrors(t *testing.T) {
	d := New()
	if _, err := d.Submit("ghost", nil); err == nil {
		t.Fatal("Submit from an unjoined session should return an error")
	}
}
