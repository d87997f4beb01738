// Package binder provides handler.Bind implementations that populate request
// structs from the JSON body, the query string and router path parameters,
// and a Validate step backed by go-playground/validator.
//
//	type UpdateTenantRequest struct {
//		ID     string  `path:"id" validate:"required,uuid"`
//		Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
//	}
//
//	handler.WithBinders[handler.Context, UpdateTenantRequest](
//		binder.JSON(), binder.Path(chi.URLParam), binder.Validate(),
//	)
//
// Bind failures are handler.HTTPError values that unwrap to the package
// sentinels, so the error handler renders them with the right status.
package binder
