package paging_test

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identikit/pkg/paging"
)

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []string{
		"0198a3f2-7c1e-7b4a-9e21-3c5d6f7a8b9c",
		"a",
		"key with spaces and ünïcode",
		`quotes "and" \ slashes`,
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			cursor := paging.EncodeCursor(key)
			assert.Equal(t, cursor, paging.EncodeCursor(key))

			got, err := paging.DecodeCursor(cursor)
			require.NoError(t, err)
			assert.Equal(t, key, got)
		})
	}
}

func TestEncodeCursorIsURLSafe(t *testing.T) {
	t.Parallel()

	cursor := paging.EncodeCursor("???>>>~~~")
	assert.NotContains(t, cursor, "+")
	assert.NotContains(t, cursor, "/")
	assert.NotContains(t, cursor, "=")
}

func TestDecodeCursorMalformed(t *testing.T) {
	t.Parallel()

	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "%%%"},
		{"plain text", "hello world"},
		{"not json", enc("plain")},
		{"wrong shape", enc(`["k"]`)},
		{"unknown field", enc(`{"k":"a","x":1}`)},
		{"empty key", enc(`{"k":""}`)},
		{"trailing data", enc(`{"k":"a"}{"k":"b"}`)},
		{"padded std encoding", base64.StdEncoding.EncodeToString([]byte(`{"k":"ab"}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := paging.DecodeCursor(tt.cursor)
			assert.ErrorIs(t, err, paging.ErrMalformedCursor)
		})
	}
}

func TestDecodeUUIDCursor(t *testing.T) {
	t.Parallel()

	t.Run("empty cursor", func(t *testing.T) {
		t.Parallel()

		id, err := paging.DecodeUUIDCursor("")
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("valid uuid", func(t *testing.T) {
		t.Parallel()

		want := uuid.Must(uuid.NewV7())
		id, err := paging.DecodeUUIDCursor(paging.EncodeCursor(want.String()))
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, want, *id)
	})

	t.Run("key is not a uuid", func(t *testing.T) {
		t.Parallel()

		_, err := paging.DecodeUUIDCursor(paging.EncodeCursor("tenant-1"))
		assert.ErrorIs(t, err, paging.ErrMalformedCursor)
	})
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := paging.ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, paging.Forward, d)

	d, err = paging.ParseDirection("backward")
	require.NoError(t, err)
	assert.Equal(t, paging.Backward, d)

	_, err = paging.ParseDirection("sideways")
	assert.ErrorIs(t, err, paging.ErrInvalidDirection)
}
