package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/andrewq/collabcode/internal/ot"
)

// Envelope is the single shape every message — in either direction —
// is framed in: a named event plus its JSON payload. This keeps the
// Socket.IO-flavored event model of original_source/server.py
// (`@socket.on('send-operation', ...)`) over a plain WebSocket
// connection, the way kolabpad frames every message as a tagged
// ClientMsg/ServerMsg — generalized here to an open set of named
// events instead of a closed struct of optional fields, since this
// protocol has two independent channels (text ops, drawing ops) and a
// roster/naming handshake that kolabpad's single-purpose protocol
// doesn't need.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload and wraps it under event.
func NewEnvelope(event string, payload interface{}) (*Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("protocol: marshal %s payload: %w", event, err)
	}
	return &Envelope{Event: event, Payload: raw}, nil
}

// JoinedPayload is sent by a client right after the socket opens.
type JoinedPayload struct {
	RoomID string `json:"room_id"`
}

// AfterJoinPayload replies to Joined with the session's assigned id,
// the drawing channel's full history, and the current roster.
type AfterJoinPayload struct {
	SessionID      string          `json:"session_id"`
	DrawingHistory json.RawMessage `json:"drawing_history"`
	Roster         []RosterEntry   `json:"roster"`
}

// RosterEntry is one [alias, color] pair, per original_source/editor.py
// get_clients_state.
type RosterEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SubmitNamePayload carries a client's requested display name.
type SubmitNamePayload struct {
	Name string `json:"name"`
}

// NewUserJoinedPayload is broadcast after a name/color is assigned.
type NewUserJoinedPayload struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
}

// SendOperationPayload and CallBackPayload are both, per §6, a bare
// JSON array of WireOp entries — the same array shape on the way in
// (client submission) and on the way back (server reply), not an
// object wrapping an "ops" field.
type SendOperationPayload = []WireOp
type CallBackPayload = []WireOp

// WireOp is the positional-array wire encoding of an ot.Operation
// described in §6:
//
//	["INS", [row, col], char, author]
//	["DEL", [row, col], author]
//	["ID", author]
//
// Client-submitted operations omit author (the server imprints the
// session id); server replies always carry it.
type WireOp struct {
	Kind      string
	Row       int
	Column    int
	Character rune
	Author    string
	hasAuthor bool
}

// FromOperation builds the wire form of op, always including author —
// the shape used for every server->client payload.
func FromOperation(op ot.Operation) WireOp {
	w := WireOp{Author: op.Author(), hasAuthor: true}
	switch v := op.(type) {
	case ot.Insert:
		w.Kind = "INS"
		w.Row, w.Column, w.Character = v.Position.Row, v.Position.Column, v.Character
	case ot.Delete:
		w.Kind = "DEL"
		w.Row, w.Column = v.Position.Row, v.Position.Column
	case ot.Identity:
		w.Kind = "ID"
	}
	return w
}

// ToOperation decodes a (possibly author-less) WireOp into an
// ot.Operation, imprinting author as the operation's author regardless
// of whatever the wire value carried — per §6, "ignoring any author
// field supplied by the client."
func (w WireOp) ToOperation(author string) (ot.Operation, error) {
	switch w.Kind {
	case "INS":
		return ot.Insert{Position: ot.Position{Row: w.Row, Column: w.Column}, Character: w.Character, By: author}, nil
	case "DEL":
		return ot.Delete{Position: ot.Position{Row: w.Row, Column: w.Column}, By: author}, nil
	case "ID":
		return ot.Identity{By: author}, nil
	default:
		return nil, fmt.Errorf("protocol: unknown operation tag %q", w.Kind)
	}
}

// MarshalJSON renders the positional-array form.
func (w WireOp) MarshalJSON() ([]byte, error) {
	switch w.Kind {
	case "INS":
		if w.hasAuthor {
			return json.Marshal([]interface{}{"INS", [2]int{w.Row, w.Column}, string(w.Character), w.Author})
		}
		return json.Marshal([]interface{}{"INS", [2]int{w.Row, w.Column}, string(w.Character)})
	case "DEL":
		if w.hasAuthor {
			return json.Marshal([]interface{}{"DEL", [2]int{w.Row, w.Column}, w.Author})
		}
		return json.Marshal([]interface{}{"DEL", [2]int{w.Row, w.Column}})
	case "ID":
		return json.Marshal([]interface{}{"ID", w.Author})
	default:
		return nil, fmt.Errorf("protocol: marshal: unknown operation tag %q", w.Kind)
	}
}

// UnmarshalJSON parses the positional-array form. Client submissions
// may omit the trailing author element; it is simply left empty (the
// adapter imprints the real author via ToOperation).
func (w *WireOp) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("protocol: malformed operation array: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("protocol: empty operation array")
	}

	var tag string
	if err := json.Unmarshal(raw[0], &tag); err != nil {
		return fmt.Errorf("protocol: operation tag: %w", err)
	}

	switch tag {
	case "INS":
		if len(raw) < 3 {
			return fmt.Errorf("protocol: INS requires position and character")
		}
		var pos [2]int
		if err := json.Unmarshal(raw[1], &pos); err != nil {
			return fmt.Errorf("protocol: INS position: %w", err)
		}
		var ch string
		if err := json.Unmarshal(raw[2], &ch); err != nil {
			return fmt.Errorf("protocol: INS character: %w", err)
		}
		runes := []rune(ch)
		if len(runes) != 1 {
			return fmt.Errorf("protocol: INS character must be a single code point, got %q", ch)
		}
		w.Kind, w.Row, w.Column, w.Character = "INS", pos[0], pos[1], runes[0]
		if len(raw) >= 4 {
			_ = json.Unmarshal(raw[3], &w.Author)
			w.hasAuthor = true
		}
	case "DEL":
		if len(raw) < 2 {
			return fmt.Errorf("protocol: DEL requires position")
		}
		var pos [2]int
		if err := json.Unmarshal(raw[1], &pos); err != nil {
			return fmt.Errorf("protocol: DEL position: %w", err)
		}
		w.Kind, w.Row, w.Column = "DEL", pos[0], pos[1]
		if len(raw) >= 3 {
			_ = json.Unmarshal(raw[2], &w.Author)
			w.hasAuthor = true
		}
	case "ID":
		w.Kind = "ID"
		if len(raw) >= 2 {
			_ = json.Unmarshal(raw[1], &w.Author)
			w.hasAuthor = true
		}
	default:
		return fmt.Errorf("protocol: unknown operation tag %q", tag)
	}

	return nil
}

// DecodeClientOps decodes a client's submitted batch, imprinting author
// on every operation and rejecting any malformed entry outright (§6,
// §7: the whole batch is rejected on a single bad element).
func DecodeClientOps(wireOps []WireOp, author string) ([]ot.Operation, error) {
	ops := make([]ot.Operation, len(wireOps))
	for i, w := range wireOps {
		op, err := w.ToOperation(author)
		if err != nil {
			return nil, fmt.Errorf("protocol: decoding operation %d: %w", i, err)
		}
		ops[i] = op
	}
	return ops, nil
}

// EncodeOps renders a batch of committed operations for the wire.
func EncodeOps(ops []ot.Operation) []WireOp {
	out := make([]WireOp, len(ops))
	for i, op := range ops {
		out[i] = FromOperation(op)
	}
	return out
}

// DrawSegment is one raw line segment on the pass-through drawing
// channel (§4.5): it carries no OT semantics, so it is forwarded
// opaquely as JSON rather than decoded into a typed model.
type DrawSegment = json.RawMessage
