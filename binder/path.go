package binder

import (
	"net/http"

	"github.com/dmitrymomot/identikit/handler"
)

// Path binds router path parameters into fields tagged `path:"name"` using
// extractor, typically chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) handler.Bind {
	return func(r *http.Request, v any) error {
		err := bindToStruct(v, "path", func(name string) []string {
			if val := extractor(r, name); val != "" {
				return []string{val}
			}
			return nil
		})
		if err != nil {
			return handler.NewHTTPError(http.StatusBadRequest, "invalid_path").
				WithMessage(err.Error()).
				Wrap(ErrInvalidPath)
		}
		return nil
	}
}
