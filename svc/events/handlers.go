package events

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/identikit/pkg/email"
)

// Forwarder publishes an encoded event under a routing key.
type Forwarder interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Forward publishes every event it receives, keyed by event type.
func Forward(f Forwarder) Handler {
	return func(ctx context.Context, e Event) error {
		body, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
		return f.Publish(ctx, string(e.Type), body)
	}
}

// WelcomeEmail greets newly created users.
func WelcomeEmail(sender email.EmailSender, appName string) Handler {
	return func(ctx context.Context, e Event) error {
		p, ok := e.Payload.(UserPayload)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnexpectedPayload, e.Payload)
		}

		name := p.FullName
		if name == "" {
			name = p.Username
		}

		var b strings.Builder
		fmt.Fprintf(&b, "<h1>Welcome, %s!</h1>", html.EscapeString(name))
		fmt.Fprintf(&b, "<p>Your %s account is ready.</p>", html.EscapeString(appName))
		fmt.Fprintf(&b, "<p>Username: <strong>%s</strong><br>Email: %s</p>",
			html.EscapeString(p.Username), html.EscapeString(p.Email))

		return sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   p.Email,
			Subject:  fmt.Sprintf("Welcome, %s!", name),
			BodyHTML: b.String(),
			Tag:      string(UserCreated),
		})
	}
}

var changeLabels = map[string]string{
	"email":     "Email address",
	"username":  "Username",
	"full_name": "Full name",
	"is_active": "Account status",
}

// ProfileUpdatedEmail tells a user which profile fields changed.
// Events without changes are ignored.
func ProfileUpdatedEmail(sender email.EmailSender, appName string) Handler {
	return func(ctx context.Context, e Event) error {
		p, ok := e.Payload.(UserUpdatedPayload)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnexpectedPayload, e.Payload)
		}
		if len(p.Changes) == 0 || p.Email == "" {
			return nil
		}

		var b strings.Builder
		b.WriteString("<h1>Your profile was updated</h1><ul>")
		for _, field := range slices.Sorted(maps.Keys(p.Changes)) {
			label, ok := changeLabels[field]
			if !ok {
				label = field
			}
			fmt.Fprintf(&b, "<li>%s updated</li>", html.EscapeString(label))
		}
		b.WriteString("</ul>")
		fmt.Fprintf(&b, "<p>Updated at %s. If this was not you, contact %s support.</p>",
			e.OccurredAt.Format("2006-01-02 15:04 MST"), html.EscapeString(appName))

		// A changed address is notified at the new one.
		return sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   p.Email,
			Subject:  "Your profile has been updated",
			BodyHTML: b.String(),
			Tag:      string(UserUpdated),
		})
	}
}
