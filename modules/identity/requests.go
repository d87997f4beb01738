package identity

import (
	"github.com/dmitrymomot/identikit/pkg/paging"
)

// ListRequest carries the cursor pagination query parameters.
type ListRequest struct {
	Cursor    string `query:"cursor"`
	PageSize  *int   `query:"page_size" validate:"omitempty,gte=1,lte=100"`
	Direction string `query:"direction" validate:"omitempty,oneof=forward backward"`
}

func (l ListRequest) pageRequest() (paging.Request, error) {
	dir, err := paging.ParseDirection(l.Direction)
	if err != nil {
		return paging.Request{}, err
	}
	size := paging.DefaultPageSize
	if l.PageSize != nil {
		size = *l.PageSize
	}
	req := paging.Request{Cursor: l.Cursor, PageSize: size, Direction: dir}
	return req, req.Validate()
}

type TenantPath struct {
	ID string `path:"tenant_id" validate:"required,uuid"`
}

type CreateTenantRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Domain string `json:"domain" validate:"required,max=255,fqdn"`
}

// UpdateTenantRequest is a partial update; omitted fields are unchanged.
type UpdateTenantRequest struct {
	ID       string  `path:"tenant_id" validate:"required,uuid"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Domain   *string `json:"domain" validate:"omitempty,max=255,fqdn"`
	IsActive *bool   `json:"is_active"`
}

type UserPath struct {
	ID string `path:"user_id" validate:"required,uuid"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
}

type UpdateUserRequest struct {
	ID       string  `path:"user_id" validate:"required,uuid"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
