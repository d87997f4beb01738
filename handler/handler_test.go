package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identikit/handler"
	"github.com/dmitrymomot/identikit/pkg/logger"
)

type echoRequest struct {
	Name string
}

var errDomainMissing = errors.New("thing missing")

func mapDomain(err error) error {
	if errors.Is(err, errDomainMissing) {
		return handler.ErrNotFound.Wrap(err)
	}
	return err
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func serve(t *testing.T, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestWrap(t *testing.T) {
	t.Parallel()

	errorHandler := handler.WithErrorHandler[handler.Context, echoRequest](
		handler.JSONErrorHandler[handler.Context](logger.Discard(), mapDomain),
	)

	t.Run("binders run in order", func(t *testing.T) {
		t.Parallel()
		first := func(r *http.Request, v any) error {
			v.(*echoRequest).Name = "first"
			return nil
		}
		second := func(r *http.Request, v any) error {
			v.(*echoRequest).Name += "+second"
			return nil
		}
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			return handler.JSON(map[string]string{"name": req.Name}, handler.WithJSONStatus(http.StatusCreated))
		}, handler.WithBinders[handler.Context, echoRequest](first, second))

		w := serve(t, h)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"name":"first+second"}`, w.Body.String())
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("binder error stops the chain", func(t *testing.T) {
		t.Parallel()
		called := false
		failing := func(r *http.Request, v any) error {
			return handler.ErrBadRequest.WithMessage("bad input")
		}
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			called = true
			return handler.Empty()
		}, handler.WithBinders[handler.Context, echoRequest](failing), errorHandler)

		w := serve(t, h)
		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		detail := decodeError(t, w)
		assert.Equal(t, "bad_request", detail.Code)
		assert.Equal(t, "bad input", detail.Message)
	})

	t.Run("fail goes through mappers", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			return handler.Fail(errDomainMissing)
		}, errorHandler)

		w := serve(t, h)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeError(t, w).Code)
	})

	t.Run("unknown errors are opaque 500s", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			return handler.Fail(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
		}, handler.WithErrorHandler[handler.Context, echoRequest](
			handler.JSONErrorHandler[handler.Context](logger.New(logger.WithOutput(buf))),
		))

		w := serve(t, h)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
		assert.Equal(t, "internal_server_error", decodeError(t, w).Code)
		assert.Contains(t, buf.String(), "connection refused")
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("validation error details", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			verr := handler.NewValidationError()
			verr.Add("domain", "domain is required")
			return handler.Fail(verr)
		}, errorHandler)

		w := serve(t, h)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		detail := decodeError(t, w)
		assert.Equal(t, "validation_error", detail.Code)
		assert.Equal(t, []string{"domain is required"}, detail.Details["domain"])
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			return nil
		}, errorHandler)
		assert.Equal(t, http.StatusInternalServerError, serve(t, h).Code)
	})

	t.Run("decorators wrap outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, echoRequest] {
			return func(next handler.HandlerFunc[handler.Context, echoRequest]) handler.HandlerFunc[handler.Context, echoRequest] {
				return func(ctx handler.Context, req echoRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		}, handler.WithDecorators(mark("outer"), mark("inner")))

		w := serve(t, h)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()
	verr := handler.NewValidationError()
	assert.True(t, verr.IsEmpty())
	assert.Equal(t, "validation failed", verr.Error())

	verr.Add("name", "name is required")
	verr.Add("domain", "domain is required")
	verr.Add("domain", "domain is too long")
	assert.True(t, verr.Has("domain"))
	assert.Equal(t, "domain is required", verr.Get("domain"))
	assert.True(t, strings.HasPrefix(verr.Error(), "validation error: domain: domain is required, name:"))
}

func TestHTTPErrorUnwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("cause")
	err := handler.ErrConflict.WithMessage("taken").Wrap(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "conflict: taken", err.Error())
	assert.Equal(t, http.StatusConflict, handler.StatusOf(err))
	assert.Equal(t, http.StatusInternalServerError, handler.StatusOf(cause))
}
