package email

// Config holds email delivery settings.
// Without a Postmark server token the application falls back to LogSender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@localhost.localdomain" validate:"required,email"`
	SupportEmail         string `env:"SUPPORT_EMAIL" validate:"omitempty,email"`
	AppName              string `env:"APP_NAME" envDefault:"Identikit"`
}

// Enabled reports whether real delivery is configured.
func (c Config) Enabled() bool {
	return c.PostmarkServerToken != ""
}
