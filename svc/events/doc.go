// Package events carries domain events from services to their side effects.
//
// Services publish through the Publisher interface. In production the
// publisher is a Bus, an in-process typed channel that a Dispatcher drains on
// its own goroutine, running handlers such as WelcomeEmail or Forward behind
// per-handler circuit breakers. Delivery is best effort: a failed handler is
// logged and never affects the request that produced the event.
package events
