package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrymomot/identikit/pkg/broadcast"
)

// Publisher hands events to whatever delivers them.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// DefaultPublishTimeout bounds how long Publish waits for buffer space.
const DefaultPublishTimeout = 250 * time.Millisecond

// Bus is the in-process event channel drained by a Dispatcher.
type Bus struct {
	b       *broadcast.MemoryBroadcaster[Event]
	timeout time.Duration
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPublishTimeout sets how long Publish may block on a full buffer.
func WithPublishTimeout(d time.Duration) BusOption {
	return func(b *Bus) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewBus creates a bus buffering up to bufferSize events per subscriber.
func NewBus(bufferSize int, opts ...BusOption) *Bus {
	b := &Bus{
		b:       broadcast.NewMemoryBroadcaster[Event](bufferSize),
		timeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish queues e for the dispatcher. When the buffer stays full for longer
// than the publish timeout the event is dropped with ErrPublishTimeout, so a
// stalled consumer never holds up the caller.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	err := b.b.Broadcast(ctx, broadcast.Message[Event]{Data: e})
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrPublishTimeout, err)
	}
	return err
}

func (b *Bus) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return b.b.Subscribe(ctx)
}

func (b *Bus) Close() error {
	return b.b.Close()
}

// Recorder is a Publisher that keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types lists the types of recorded events in publish order.
func (r *Recorder) Types() []Type {
	evs := r.Events()
	out := make([]Type, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
