package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder[T any] struct {
	mu  sync.Mutex
	got []T
}

func (r *recorder[T]) add(v T) {
	r.mu.Lock()
	r.got = append(r.got, v)
	r.mu.Unlock()
}

func (r *recorder[T]) values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.got...)
}

func TestCallbackEvent_ListenNotify(t *testing.T) {
	event := NewCallbackEvent[string](false)
	var first, second recorder[string]

	unregister1 := event.Listen(first.add)
	unregister2 := event.Listen(second.add)
	assert.Equal(t, 2, event.ListenerCount())

	event.Notify("a")
	event.Notify("b")
	assert.Equal(t, []string{"a", "b"}, first.values())
	assert.Equal(t, []string{"a", "b"}, second.values())

	unregister1()
	event.Notify("c")
	assert.Equal(t, []string{"a", "b"}, first.values())
	assert.Equal(t, []string{"a", "b", "c"}, second.values())

	unregister2()
	unregister2()
	assert.Equal(t, 0, event.ListenerCount())
}

func TestCallbackEvent_Replay(t *testing.T) {
	tests := []struct {
		name   string
		replay bool
		want   []int
	}{
		{"replay", true, []int{1, 2}},
		{"no replay", false, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewCallbackEvent[int](tt.replay)
			var early recorder[int]
			defer event.Listen(early.add)()
			assert.Empty(t, early.values())

			event.Notify(1)
			var late recorder[int]
			defer event.Listen(late.add)()
			event.Notify(2)

			assert.Equal(t, []int{1, 2}, early.values())
			assert.Equal(t, tt.want, late.values())

			last, ok := event.Last()
			assert.Equal(t, tt.replay, ok)
			if ok {
				assert.Equal(t, 2, last)
			}
		})
	}
}

func TestCallbackEvent_UnregisterDuringNotify(t *testing.T) {
	event := NewCallbackEvent[string](false)
	var rec recorder[string]
	var unregister func()
	unregister = event.Listen(func(v string) {
		rec.add(v)
		if v == "stop" {
			unregister()
		}
	})

	event.Notify("go")
	event.Notify("stop")
	event.Notify("ignored")

	assert.Equal(t, []string{"go", "stop"}, rec.values())
	assert.Equal(t, 0, event.ListenerCount())
}

func TestCallbackEvent_NilCallback(t *testing.T) {
	assert.Panics(t, func() { NewCallbackEvent[string](false).Listen(nil) })
}

func TestCallbackEvent_Concurrent(t *testing.T) {
	event := NewCallbackEvent[int](false)
	var rec recorder[int]
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event.Listen(rec.add)
		}()
	}
	wg.Wait()
	require.Equal(t, 10, event.ListenerCount())

	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event.Notify(i)
		}()
	}
	wg.Wait()
	assert.Len(t, rec.values(), 50)
}

func TestChannelEvent_ListenNotify(t *testing.T) {
	event := NewChannelEvent[string](true)
	event.Notify("before")

	ch := make(chan string, 2)
	unregister := event.Listen(ch)
	require.Equal(t, "before", <-ch)

	event.Notify("after")
	require.Equal(t, "after", <-ch)

	unregister()
	event.Notify("dropped")
	select {
	case v := <-ch:
		t.Errorf("unexpected value after unregister: %s", v)
	default:
	}
}

func TestChannelEvent_FullChannelDoesNotBlock(t *testing.T) {
	event := NewChannelEvent[int](false)
	ch := make(chan int, 1)
	defer event.Listen(ch)()

	event.Notify(1)
	event.Notify(2)

	assert.Equal(t, 1, <-ch)
	assert.Empty(t, ch)
}

func TestChannelEvent_NilChannel(t *testing.T) {
	assert.Panics(t, func() { NewChannelEvent[int](false).Listen(nil) })
}
