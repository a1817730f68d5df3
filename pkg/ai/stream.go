// ABOUTME: Channel-based chunk streaming for model responses
// ABOUTME: ChunkStream decouples producer goroutines from consumers without send-on-closed races

package ai

import (
	"sync"
	"sync/atomic"
)

// ChunkType identifies the kind of stream chunk.
type ChunkType int

const (
	ChunkTextDelta ChunkType = iota
	ChunkToolCallDelta
	ChunkUsage
	ChunkDone
	ChunkError
)

// StreamChunk is one incremental unit of a streamed model response.
// ToolCallDelta chunks address a tool-call slot by Index; the first delta
// for a slot carries the ID and usually the Name, later deltas append
// argument fragments. Usage chunks carry token deltas, not totals.
type StreamChunk struct {
	Type ChunkType

	Text string // ChunkTextDelta

	Index        int    // ChunkToolCallDelta: tool-call slot
	ToolID       string // first delta for a slot
	ToolName     string
	ArgsFragment string

	Usage *Usage // ChunkUsage

	Err error // ChunkError
}

// ChunkStream provides channel-based access to streaming chunks.
// Consumers range over Chunks() and check Result() when done.
//
// Send writes to an internal channel that is never closed externally;
// Finish closes only the done channel. A drainer goroutine forwards
// chunks to the consumer-facing channel and closes it once done fires
// and the buffer is empty, so Send can never panic on a closed channel.
type ChunkStream struct {
	chunks chan StreamChunk
	out    chan StreamChunk
	done   chan struct{}
	resp   atomic.Pointer[ChatResponse]
	err    atomic.Pointer[error]
	once   sync.Once
}

// NewChunkStream creates a stream with the given internal buffer size.
func NewChunkStream(bufSize int) *ChunkStream {
	s := &ChunkStream{
		chunks: make(chan StreamChunk, bufSize),
		out:    make(chan StreamChunk, bufSize),
		done:   make(chan struct{}),
	}
	go s.drain()
	return s
}

func (s *ChunkStream) drain() {
	defer close(s.out)
	for {
		select {
		case c := <-s.chunks:
			s.out <- c
		case <-s.done:
			for {
				select {
				case c := <-s.chunks:
					s.out <- c
				default:
					return
				}
			}
		}
	}
}

// Chunks returns a read-only channel of chunks, closed when the stream ends.
func (s *ChunkStream) Chunks() <-chan StreamChunk {
	return s.out
}

// Send queues a chunk. Returns false if the stream is already finished.
func (s *ChunkStream) Send(c StreamChunk) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.chunks <- c:
		return true
	case <-s.done:
		return false
	}
}

// Finish completes the stream with the assembled response.
func (s *ChunkStream) Finish(resp *ChatResponse) {
	s.once.Do(func() {
		if resp != nil {
			s.resp.Store(resp)
		}
		close(s.done)
	})
}

// FinishWithError emits a terminal error chunk and completes the stream.
func (s *ChunkStream) FinishWithError(err error) {
	s.Send(StreamChunk{Type: ChunkError, Err: err})
	s.once.Do(func() {
		s.err.Store(&err)
		close(s.done)
	})
}

// Result blocks until the stream completes and returns the final response
// or the terminal error.
func (s *ChunkStream) Result() (*ChatResponse, error) {
	<-s.done
	if p := s.err.Load(); p != nil {
		return nil, *p
	}
	return s.resp.Load(), nil
}

// Done returns a channel closed when the stream completes.
func (s *ChunkStream) Done() <-chan struct{} {
	return s.done
}
