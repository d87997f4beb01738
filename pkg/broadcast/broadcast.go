package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the channel messages are delivered on.
	// The channel is closed when the subscriber or broadcaster is closed.
	Receive() <-chan Message[T]

	// Close stops delivery and closes the receive channel. It is idempotent.
	Close() error
}

// Broadcaster fans messages out to every active subscriber.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber that lives until ctx is done or Close is called.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to every subscriber, waiting for buffer space
	// until ctx is done.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close closes all subscribers. Broadcasting afterwards returns ErrClosed.
	Close() error
}

type subscriber[T any] struct {
	ch        chan Message[T]
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch:   make(chan Message[T], bufferSize),
		done: make(chan struct{}),
	}
}

func (s *subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.closeOnce.Do(func() {
		// Unblock pending senders before taking the write lock.
		close(s.done)

		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
	return nil
}

func (s *subscriber[T]) send(ctx context.Context, msg Message[T]) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSubscriberClosed
	}

	select {
	case s.ch <- msg:
		return nil
	case <-s.done:
		return ErrSubscriberClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
