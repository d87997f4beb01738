// Package email sends transactional email through Postmark, or logs messages
// when no provider is configured.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "jane@example.com",
//		Subject:  "Welcome",
//		BodyHTML: "<p>Hello</p>",
//	})
//
// Parameters are validated before any network call; invalid input yields
// ErrInvalidParams and provider failures yield ErrFailedToSendEmail.
package email
