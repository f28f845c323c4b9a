package transport

import "encoding/json"

// unmarshalPayload decodes an envelope's raw payload into dst and
// returns json's error unchanged; callers add their own context when
// they log or wrap it (§7: malformed payloads are rejected and logged,
// not panicked on).
func unmarshalPayload(raw json.RawMessage, dst interface{}) error {
	return json.Unmarshal(raw, dst)
}

// marshalAny is the mirror of unmarshalPayload, used for values (like
// the drawing history slice) that aren't already json.RawMessage.
func marshalAny(v interface{}) (json.RawMessage, error) {
	return json.Marshal(v)
}
