package amqp

import "errors"

var (
	ErrNotConnected      = errors.New("amqp: connection is not available")
	ErrFailedToConnect   = errors.New("amqp: failed to connect")
	ErrFailedToDeclare   = errors.New("amqp: failed to declare topology")
	ErrFailedToPublish   = errors.New("amqp: failed to publish message")
	ErrPublishNotAcked   = errors.New("amqp: broker did not confirm message")
	ErrHealthcheckFailed = errors.New("amqp: healthcheck failed")
)
