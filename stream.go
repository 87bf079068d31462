package xmlevents

import (
	"context"
	"sync"
)

// Result is one item delivered by StreamReader.Events: exactly one of
// Event or Err is meaningful, mirroring what ReadEvent would have
// returned for that call.
type Result struct {
	Event Event
	Err   error
}

// StreamReader adapts a Reader to a channel-based consumer, running the
// read loop on its own goroutine. It is safe to call Events multiple
// times — subsequent calls return the same channel.
type StreamReader struct {
	ctx        context.Context
	reader     *Reader
	bufferSize int
	once       sync.Once
	ch         chan Result
}

// NewStreamReader wraps reader for channel-based consumption. bufferSize
// is the channel's buffer capacity; 0 selects a default of 8.
func NewStreamReader(ctx context.Context, reader *Reader, bufferSize int) *StreamReader {
	if bufferSize <= 0 {
		bufferSize = 8
	}
	return &StreamReader{ctx: ctx, reader: reader, bufferSize: bufferSize}
}

// Events returns a channel of Results as they are parsed. The channel is
// closed after the terminal Eof event (delivered as a final Result) or
// after a fatal error, or early if ctx is cancelled.
func (s *StreamReader) Events() <-chan Result {
	s.once.Do(func() {
		s.ch = make(chan Result, s.bufferSize)
		go func() {
			defer close(s.ch)
			s.run(s.ch)
		}()
	})
	return s.ch
}

func (s *StreamReader) run(ch chan<- Result) {
	for {
		if s.ctx.Err() != nil {
			return
		}
		ev, err := s.reader.ReadEvent()
		if err != nil {
			select {
			case ch <- Result{Err: err}:
			case <-s.ctx.Done():
			}
			if !isRecoverable(err) {
				return
			}
			continue
		}
		select {
		case ch <- Result{Event: ev.Owned()}:
		case <-s.ctx.Done():
			return
		}
		if ev.Kind == Eof {
			return
		}
	}
}
