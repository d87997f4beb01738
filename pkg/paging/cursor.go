package paging

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
)

type cursorPayload struct {
	Key string `json:"k"`
}

// EncodeCursor produces an opaque token for the given key.
// Equal keys always produce equal tokens.
func EncodeCursor(key string) string {
	// Marshalling a struct with a single string field cannot fail.
	raw, _ := json.Marshal(cursorPayload{Key: key})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor returns the key carried by a token produced by EncodeCursor.
// Any other input yields ErrMalformedCursor.
func DecodeCursor(cursor string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", errors.Join(ErrMalformedCursor, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var p cursorPayload
	if err := dec.Decode(&p); err != nil {
		return "", errors.Join(ErrMalformedCursor, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", ErrMalformedCursor
	}
	if p.Key == "" {
		return "", ErrMalformedCursor
	}

	return p.Key, nil
}

// DecodeUUIDCursor decodes a cursor whose key is a UUID.
// An empty cursor returns nil, meaning "start from the edge".
func DecodeUUIDCursor(cursor string) (*uuid.UUID, error) {
	if cursor == "" {
		return nil, nil
	}

	key, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(key)
	if err != nil {
		return nil, errors.Join(ErrMalformedCursor, err)
	}

	return &id, nil
}
