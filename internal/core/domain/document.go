package domain

import (
	"encoding/json"
	"maps"

	"go.trai.ch/zerr"
)

// Document is a structured JSON object as held by a document store.
// Values are kept raw so that keys the tool does not understand survive
// a load, mutate, write cycle byte for byte.
type Document map[string]json.RawMessage

// Clone returns a copy of the document. The raw values are shared since
// they are never mutated in place.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// decodeField unmarshals the raw value stored under key into v.
func decodeField(key string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return wrapField(err, ErrManifestDecode, key)
	}
	return nil
}

// encodeField marshals v and stores it under key.
func encodeField(doc Document, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return wrapField(err, ErrManifestEncode, key)
	}
	doc[key] = raw
	return nil
}

func wrapField(err, sentinel error, key string) error {
	return zerr.With(zerr.Wrap(err, sentinel.Error()), "field", key)
}
