// Package amqp publishes domain events to a RabbitMQ topic exchange using
// github.com/rabbitmq/amqp091-go. Messages are persistent JSON and every
// publish waits for a broker confirmation.
package amqp
