package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/dmitrymomot/identikit/pkg/logger"
)

// Handler reacts to a single event.
type Handler func(ctx context.Context, e Event) error

type route struct {
	name    string
	handler Handler
	breaker *gobreaker.CircuitBreaker
}

// Dispatcher drains a Bus and runs the registered handlers for each event.
// Handlers for one event run sequentially; a failing handler does not stop
// the others. Each handler sits behind its own circuit breaker.
type Dispatcher struct {
	bus            *Bus
	log            *slog.Logger
	handlerTimeout time.Duration
	breaker        gobreaker.Settings

	mu     sync.RWMutex
	routes map[Type][]route
	wg     sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHandlerTimeout bounds a single handler invocation.
func WithHandlerTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.handlerTimeout = d
		}
	}
}

// WithBreakerSettings overrides the circuit breaker template.
// Name and OnStateChange are set per handler.
func WithBreakerSettings(s gobreaker.Settings) DispatcherOption {
	return func(disp *Dispatcher) { disp.breaker = s }
}

func NewDispatcher(bus *Bus, log *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		bus:            bus,
		log:            log.With(logger.Component("events.dispatcher")),
		handlerTimeout: 10 * time.Second,
		breaker: gobreaker.Settings{
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		},
		routes: make(map[Type][]route),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle registers h under name for the given event types.
func (d *Dispatcher) Handle(name string, h Handler, types ...Type) {
	settings := d.breaker
	settings.Name = name
	settings.OnStateChange = func(name string, from, to gobreaker.State) {
		d.log.Warn("event handler breaker state changed",
			logger.Handler(name),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	}
	r := route{name: name, handler: h, breaker: gobreaker.NewCircuitBreaker(settings)}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range types {
		d.routes[t] = append(d.routes[t], r)
	}
}

// Start subscribes to the bus and processes events until ctx is done or the
// bus is closed. Events published after Start returns are never missed.
func (d *Dispatcher) Start(ctx context.Context) {
	sub := d.bus.Subscribe(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for msg := range sub.Receive() {
			d.Dispatch(ctx, msg.Data)
		}
	}()
}

// Wait blocks until the processing loop started by Start exits.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Dispatch runs every handler registered for e.Type and returns their joined errors.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) error {
	d.mu.RLock()
	routes := d.routes[e.Type]
	d.mu.RUnlock()

	var errs []error
	for _, r := range routes {
		if err := d.invoke(ctx, r, e); err != nil {
			d.log.ErrorContext(ctx, "event handler failed",
				logger.Handler(r.name),
				logger.EventType(string(e.Type)),
				logger.MessageID(e.ID.String()),
				logger.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) invoke(ctx context.Context, r route, e Event) error {
	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.handlerTimeout)
	defer cancel()

	_, err := r.breaker.Execute(func() (_ any, herr error) {
		defer func() {
			if p := recover(); p != nil {
				herr = fmt.Errorf("%w: %v", ErrHandlerPanicked, p)
			}
		}()
		return nil, r.handler(hctx, e)
	})
	return err
}
