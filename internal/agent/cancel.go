// ABOUTME: One-shot cooperative cancellation token checked between loop steps
// ABOUTME: Never aborts in-flight provider or tool I/O; methods are nil-safe

package agent

import "sync"

// CancelToken requests cooperative cancellation of a prompt run. The loop
// checks it before each provider call and before each tool execution; work
// already in flight completes normally. A token is single-use.
type CancelToken struct {
	once sync.Once
	done chan struct{}
}

// NewCancelToken creates an unfired token.
func NewCancelToken() *CancelToken {
	return &CancelToken{done: make(chan struct{})}
}

// Cancel fires the token. Idempotent; later calls are no-ops.
func (t *CancelToken) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.done) })
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed once the token fires. Nil tokens return
// a nil channel, which blocks forever in select.
func (t *CancelToken) Done() <-chan struct{} {
	if t == nil {
		return nil
	}
	return t.done
}
