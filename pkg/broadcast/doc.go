// Package broadcast provides a typed one-to-many message fan-out.
//
//	b := broadcast.NewMemoryBroadcaster[string](16)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//
//	for msg := range sub.Receive() {
//		fmt.Println(msg.Data)
//	}
//
// Subscribers are removed when their context is cancelled, when they are
// closed, or when the broadcaster is closed. Broadcast blocks while a
// subscriber's buffer is full, bounded by its context.
package broadcast
