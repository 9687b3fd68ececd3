package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	ch chan string
	mu sync.Mutex
	n  int
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 8)}
}

func (r *recorder) deliver(v string) {
	r.mu.Lock()
	r.n++
	r.mu.Unlock()
	r.ch <- v
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

func (r *recorder) next(t *testing.T) string {
	t.Helper()
	select {
	case v := <-r.ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return ""
	}
}

func TestDebouncer_DeliversLastValueAfterQuiescence(t *testing.T) {
	mock := clock.NewMock()
	rec := newRecorder()
	d := New(DefaultDelay, mock, rec.deliver)

	d.Trigger("a")
	mock.Add(100 * time.Millisecond)
	d.Trigger("ab")
	mock.Add(100 * time.Millisecond)
	d.Trigger("abc")

	// 499 ms after the first keystroke: still inside the window of the last one.
	mock.Add(299 * time.Millisecond)
	assert.Never(t, func() bool { return rec.count() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.True(t, d.Pending())

	mock.Add(1 * time.Millisecond)
	assert.Equal(t, "abc", rec.next(t))

	mock.Add(time.Second)
	assert.Never(t, func() bool { return rec.count() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateBurstsDeliverSeparately(t *testing.T) {
	mock := clock.NewMock()
	rec := newRecorder()
	d := New(DefaultDelay, mock, rec.deliver)

	d.Trigger("first")
	mock.Add(DefaultDelay)
	assert.Equal(t, "first", rec.next(t))

	d.Trigger("second")
	mock.Add(DefaultDelay)
	assert.Equal(t, "second", rec.next(t))
}

func TestDebouncer_FlushDeliversImmediately(t *testing.T) {
	mock := clock.NewMock()
	rec := newRecorder()
	d := New(DefaultDelay, mock, rec.deliver)

	d.Trigger("abc")
	d.Flush("")

	// Flush is synchronous.
	require.Equal(t, 1, rec.count())
	assert.Equal(t, "", rec.next(t))

	mock.Add(time.Second)
	assert.Never(t, func() bool { return rec.count() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	mock := clock.NewMock()
	rec := newRecorder()
	d := New(DefaultDelay, mock, rec.deliver)

	d.Trigger("abc")
	d.Stop()
	mock.Add(time.Second)

	d.Trigger("ignored")
	d.Flush("ignored")
	mock.Add(time.Second)

	assert.Never(t, func() bool { return rec.count() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.False(t, d.Pending())
}

func TestDebouncer_ConcurrentTriggers(t *testing.T) {
	mock := clock.NewMock()
	rec := newRecorder()
	d := New(DefaultDelay, mock, rec.deliver)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Trigger("x")
		}()
	}
	wg.Wait()

	mock.Add(DefaultDelay)
	assert.Equal(t, "x", rec.next(t))
	assert.Never(t, func() bool { return rec.count() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestNew_Defaults(t *testing.T) {
	d := New[string](0, nil, func(string) {})

	assert.Equal(t, DefaultDelay, d.delay)
	assert.NotNil(t, d.clock)
}
