package binder

import (
	"net/http"

	"github.com/dmitrymomot/identikit/handler"
)

// Query binds URL query parameters into fields tagged `query:"name"`.
// Pointers stay nil when the parameter is absent; slices accept repeated
// and comma-separated values.
//
//	type ListRequest struct {
//		Cursor    string `query:"cursor"`
//		PageSize  *int   `query:"page_size"`
//		Direction string `query:"direction"`
//	}
func Query() handler.Bind {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		if err := bindToStruct(v, "query", func(name string) []string { return q[name] }); err != nil {
			return handler.NewHTTPError(http.StatusBadRequest, "invalid_query").
				WithMessage(err.Error()).
				Wrap(ErrInvalidQuery)
		}
		return nil
	}
}
