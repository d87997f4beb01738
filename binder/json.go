package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrymomot/identikit/handler"
)

// DefaultMaxJSONSize bounds request bodies read by JSON.
const DefaultMaxJSONSize = 1 << 20

// JSON decodes an application/json body into the target. Unknown fields and
// trailing data are rejected.
func JSON() handler.Bind {
	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return handler.ErrUnsupportedMediaType.
				WithMessage("expected application/json").
				Wrap(ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return handler.ErrUnsupportedMediaType.
				WithMessage(fmt.Sprintf("got %s, expected application/json", ct)).
				Wrap(ErrUnsupportedMediaType)
		}

		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, DefaultMaxJSONSize))
		dec.DisallowUnknownFields()

		if err := dec.Decode(v); err != nil {
			return decodeError(err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return decodeError(err)
			}
			return invalidJSON("unexpected data after JSON object")
		}
		return nil
	}
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return handler.ErrRequestTooLarge.Wrap(ErrRequestTooLarge)
	case errors.Is(err, io.EOF):
		return invalidJSON("empty body")
	default:
		return invalidJSON(err.Error())
	}
}

func invalidJSON(msg string) error {
	return handler.NewHTTPError(http.StatusBadRequest, "invalid_json").
		WithMessage(msg).
		Wrap(ErrInvalidJSON)
}
