// ABOUTME: Typed event plumbing: unbounded FIFO queue and subscriber bus
// ABOUTME: Queue never blocks producers; Bus fans out to registered handlers

package eventbus

import "sync"

// Queue is an unbounded FIFO conduit between one producer side and one
// consumer. Push never blocks regardless of consumer speed; a pump
// goroutine feeds the outbound channel from an internal slice buffer.
// Emission order is preserved exactly.
type Queue[T any] struct {
	mu     sync.Mutex
	buf    []T
	wake   chan struct{}
	out    chan T
	closed bool
}

// NewQueue creates a queue and starts its pump goroutine.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{
		wake: make(chan struct{}, 1),
		out:  make(chan T),
	}
	go q.pump()
	return q
}

// Push enqueues an item. Safe for concurrent use; never blocks.
// Items pushed after Close are dropped.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.buf = append(q.buf, item)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Close marks the queue finished. Buffered items are still delivered,
// then the outbound channel closes. Idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Out returns the consumer channel. Closed after Close once drained.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

func (q *Queue[T]) pump() {
	defer close(q.out)
	for {
		q.mu.Lock()
		batch := q.buf
		q.buf = nil
		closed := q.closed
		q.mu.Unlock()

		for _, item := range batch {
			q.out <- item
		}
		if closed {
			// A producer may have raced a final Push before Close won
			// the lock; deliver whatever landed.
			q.mu.Lock()
			batch = q.buf
			q.buf = nil
			q.mu.Unlock()
			for _, item := range batch {
				q.out <- item
			}
			return
		}
		<-q.wake
	}
}

// Handler is a callback function for events.
type Handler[T any] func(T)

// Bus delivers events synchronously to all registered handlers.
type Bus[T any] struct {
	mu       sync.RWMutex
	handlers map[int]Handler[T]
	nextID   int
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{handlers: make(map[int]Handler[T])}
}

// Subscribe registers a handler and returns an unsubscribe function.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Publish sends an event to all registered handlers.
// Handlers run synchronously in arbitrary order.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	// Snapshot handlers to avoid holding lock during callbacks
	snapshot := make([]Handler[T], 0, len(b.handlers))
	for _, h := range b.handlers {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
