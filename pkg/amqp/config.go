package amqp

import "time"

type Config struct {
	// URL is the broker address; empty disables publishing.
	URL string `env:"RABBITMQ_URL"`
	// Exchange is the durable topic exchange events are published to.
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"user_events"`
	// Queue is declared and bound so published events are retained.
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"user_events_queue"`
	BindingKey string `env:"RABBITMQ_BINDING_KEY" envDefault:"user.*"`

	PublishTimeout time.Duration `env:"RABBITMQ_PUBLISH_TIMEOUT" envDefault:"5s"`
	RetryAttempts  int           `env:"RABBITMQ_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"RABBITMQ_RETRY_INTERVAL" envDefault:"2s"`
}

// Enabled reports whether a broker is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
