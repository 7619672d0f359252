package cuelist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robmorgan/glow/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, q *Queue) []fixture.Command {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make([]fixture.Command, 0)
	for q.Len() > 0 {
		cmd, err := q.Dequeue(context.Background())
		require.NoError(t, err)
		out = append(out, cmd)
	}

	// an empty queue with a cancelled context returns immediately
	_, err := q.Dequeue(ctx)
	require.ErrorIs(t, err, context.Canceled)
	return out
}

func TestNewQueueDefaultCapacity(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultQueueCapacity, NewQueue(0).Cap())
	require.Equal(t, DefaultQueueCapacity, NewQueue(-3).Cap())
	require.Equal(t, 4, NewQueue(4).Cap())
}

func TestQueueIsFIFO(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	q.Enqueue(fixture.Command{Channel: fixture.Channel0, Brightness: 1})
	q.Enqueue(fixture.Command{Channel: fixture.Channel1, Brightness: 2})
	q.Enqueue(fixture.Command{Channel: fixture.Channel0, Brightness: 3})

	require.Equal(t, 3, q.Len())
	assert.Equal(t, []fixture.Command{
		{Channel: fixture.Channel0, Brightness: 1},
		{Channel: fixture.Channel1, Brightness: 2},
		{Channel: fixture.Channel0, Brightness: 3},
	}, drain(t, q))
	require.Equal(t, uint64(0), q.Dropped())
}

func TestQueueOverwritesOldest(t *testing.T) {
	t.Parallel()

	capacity := 8
	q := NewQueue(capacity)
	for i := 0; i <= capacity; i++ {
		q.Enqueue(fixture.Command{Channel: fixture.Channel(i % 2), Brightness: uint8(i)})
	}

	require.Equal(t, capacity, q.Len())
	require.Equal(t, uint64(1), q.Dropped())

	got := drain(t, q)
	require.Len(t, got, capacity)
	for i, cmd := range got {
		// command 0 was overwritten, 1..N survive in order
		assert.Equal(t, uint8(i+1), cmd.Brightness)
	}
}

func TestQueueOverwriteKeepsNewest(t *testing.T) {
	t.Parallel()

	q := NewQueue(2)
	for i := 0; i < 10; i++ {
		q.Enqueue(fixture.Command{Channel: fixture.Channel0, Brightness: uint8(i)})
	}

	require.Equal(t, uint64(8), q.Dropped())
	assert.Equal(t, []fixture.Command{
		{Channel: fixture.Channel0, Brightness: 8},
		{Channel: fixture.Channel0, Brightness: 9},
	}, drain(t, q))
}

func TestDequeueBlocksUntilEnqueue(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	result := make(chan fixture.Command, 1)
	go func() {
		cmd, err := q.Dequeue(context.Background())
		if err == nil {
			result <- cmd
		}
	}()

	select {
	case <-result:
		t.Fatal("dequeue returned from an empty queue")
	case <-time.After(20 * time.Millisecond):
	}

	q.Enqueue(fixture.Command{Channel: fixture.Channel1, Brightness: 55})
	select {
	case cmd := <-result:
		require.Equal(t, fixture.Command{Channel: fixture.Channel1, Brightness: 55}, cmd)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not return after enqueue")
	}
}

func TestEnqueueNeverBlocksWithConcurrentProducers(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	producers := 8
	perProducer := 100

	wg := sync.WaitGroup{}
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(fixture.Command{Channel: fixture.Channel0, Brightness: uint8(i)})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 4, q.Len())
	require.Equal(t, uint64(producers*perProducer-4), q.Dropped())
}
