// Package protocol defines the wire format between client and server:
// the JSON encoding of ot.Operation values (§6) and the named
// WebSocket events the transport adapter (C7) dispatches on.
package protocol

// Event names, exactly as named in spec §6.
const (
	EventJoined        = "joined"
	EventAfterJoin     = "after-join"
	EventSubmitName    = "submit-name"
	EventNewUserJoined = "new-user-joined"
	EventSendOperation = "send-operation"
	EventCallBack      = "call-back"
	EventSendDrawing   = "send-drawing"
	EventDrawCallBack  = "draw-call-back"
)

// Palette is the fixed rotating color palette assigned to new clients,
// advancing modulo len(Palette) per room (original_source/editor.py's
// get_next_color).
var Palette = []string{"#AAFF00", "#FFAA00", "#FF00AA", "#AA00FF", "#00AAFF"}
