package xmlevents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StreamReader_DrainsAllEvents(t *testing.T) {
	r := NewReader(NewSliceInput([]byte("<a><b/></a>")))
	s := NewStreamReader(context.Background(), r, 0)

	var kinds []EventKind
	for res := range s.Events() {
		require.NoError(t, res.Err)
		kinds = append(kinds, res.Event.Kind)
		if res.Event.Kind == Eof {
			break
		}
	}
	assert.Equal(t, []EventKind{StartTag, EmptyTag, EndTag, Eof}, kinds)
}

func Test_StreamReader_EventsReturnsSameChannelOnRepeatedCalls(t *testing.T) {
	r := NewReader(NewSliceInput([]byte("<a/>")))
	s := NewStreamReader(context.Background(), r, 4)

	first := s.Events()
	second := s.Events()
	assert.Equal(t, first, second)

	for range first {
	}
}

func Test_StreamReader_StopsOnContextCancellation(t *testing.T) {
	r := NewReader(NewSliceInput([]byte("<a><b/><c/><d/></a>")))
	ctx, cancel := context.WithCancel(context.Background())
	s := NewStreamReader(ctx, r, 0)

	ch := s.Events()
	<-ch
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after context cancellation")
		}
	}
}

func Test_StreamReader_RecoverableErrorContinuesStream(t *testing.T) {
	r := NewReader(NewSliceInput([]byte("</x>")))
	s := NewStreamReader(context.Background(), r, 0)

	res := <-s.Events()
	require.Error(t, res.Err)
	var illFormed *IllFormedError
	require.ErrorAs(t, res.Err, &illFormed)
	assert.Equal(t, UnmatchedEndTag, illFormed.Kind)

	res = <-s.Events()
	require.NoError(t, res.Err)
	assert.Equal(t, Eof, res.Event.Kind)

	_, ok := <-s.Events()
	assert.False(t, ok)
}

func Test_StreamReader_FatalErrorClosesStream(t *testing.T) {
	r := NewReader(NewSliceInput([]byte("<a><!--unterminated")))
	s := NewStreamReader(context.Background(), r, 0)

	res := <-s.Events()
	require.NoError(t, res.Err)
	assert.Equal(t, StartTag, res.Event.Kind)

	res = <-s.Events()
	require.Error(t, res.Err)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, res.Err, &syntaxErr)

	_, ok := <-s.Events()
	assert.False(t, ok)
}
