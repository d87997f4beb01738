package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailSender delivers a single transactional email.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents one outgoing message.
type SendEmailParams struct {
	SendTo   string `json:"send_to" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=255"`
	BodyHTML string `json:"body_html" validate:"required"`
	Tag      string `json:"tag,omitempty" validate:"omitempty,max=1000"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the params before they reach a provider.
func (p SendEmailParams) Validate() error {
	return validationError(ErrInvalidParams, validate.Struct(p))
}

func validationError(sentinel, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Join(sentinel, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(msgs, "; "))
}
