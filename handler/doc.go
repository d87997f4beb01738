// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value populated by binders,
// and returns a Response. Wrap runs the binders in order, calls the handler
// and renders the result. Anything that fails along the way, including a
// handler returning Fail(err), reaches a single ErrorHandler.
//
//	r.Post("/tenants", handler.Wrap(createTenant,
//		handler.WithBinders[handler.Context, CreateTenantRequest](binder.JSON(), binder.Validate()),
//		handler.WithErrorHandler[handler.Context, CreateTenantRequest](
//			handler.JSONErrorHandler[handler.Context](log, mapDomainErrors),
//		),
//	))
//
// JSONErrorHandler renders HTTPError with its own status and key,
// ValidationError as 422 with per-field details, and everything else as a
// generic 500 whose cause is only logged.
package handler
