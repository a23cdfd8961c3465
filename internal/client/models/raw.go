package models

import (
	"bytes"
	"encoding/json"
)

// rawJSON holds the document a resource was decoded from together with the
// encoding of its typed fields at decode time.
type rawJSON struct {
	raw   json.RawMessage
	typed []byte
}

// Raw returns the JSON the value was decoded from, or nil for values built
// in code.
func (r rawJSON) Raw() json.RawMessage {
	return r.raw
}

// keep records b as the source document of a value whose typed fields encode
// to typed.
func keep(b, typed []byte) rawJSON {
	return rawJSON{raw: append(json.RawMessage(nil), b...), typed: typed}
}

// pick returns the source document while the typed fields are unchanged
// since decoding, and fresh otherwise.
func (r rawJSON) pick(fresh []byte) []byte {
	if r.raw != nil && bytes.Equal(fresh, r.typed) {
		return r.raw
	}
	return fresh
}
