package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/identikit/pkg/logger"
)

// ErrorMapper translates domain errors into HTTPError or ValidationError.
// It returns err unchanged when it has no mapping.
type ErrorMapper func(err error) error

// JSONErrorHandler renders errors as JSON after passing them through mappers.
// Client errors are logged at warn level; anything that ends up as a 5xx is
// logged at error level with its original cause, which never reaches the
// response body.
func JSONErrorHandler[C Context](log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[C] {
	return func(ctx C, err error) {
		mapped := err
		for _, m := range mappers {
			mapped = m(mapped)
		}

		resp := JSONError(mapped)
		status := StatusOf(mapped)
		r := ctx.Request()
		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Status(status),
			logger.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
		} else {
			log.LogAttrs(ctx, slog.LevelWarn, "request rejected", attrs...)
		}

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "failed to render error response", logger.Error(renderErr))
		}
	}
}
