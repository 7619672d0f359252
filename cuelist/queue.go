package cuelist

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
	"github.com/sirupsen/logrus"
)

// DefaultQueueCapacity is used when a queue is created with a non-positive capacity.
const DefaultQueueCapacity = 8

// Queue is a bounded FIFO of pending commands. When it is full the oldest
// pending command is dropped to make room, so Enqueue never blocks and the
// newest command always gets in.
type Queue struct {
	commands chan fixture.Command

	// enqueueLock serialises producers so drop-then-append is a single step.
	enqueueLock sync.Mutex
	dropped     atomic.Uint64
}

// NewQueue returns an empty queue holding at most capacity commands.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		commands: make(chan fixture.Command, capacity),
	}
}

// Enqueue appends cmd, dropping the oldest pending command if the queue is full.
func (q *Queue) Enqueue(cmd fixture.Command) {
	q.enqueueLock.Lock()
	defer q.enqueueLock.Unlock()

	for {
		select {
		case q.commands <- cmd:
			return
		default:
		}

		// full: drop the oldest, unless the consumer beat us to it
		select {
		case old := <-q.commands:
			q.dropped.Add(1)
			logger := logger.GetProjectLogger()
			logger.WithFields(logrus.Fields{"dropped": old.String(), "queued": cmd.String()}).Debug("Command queue full, dropped oldest command")
		default:
		}
	}
}

// Dequeue blocks until a command is available or ctx is done.
func (q *Queue) Dequeue(ctx context.Context) (fixture.Command, error) {
	select {
	case cmd := <-q.commands:
		return cmd, nil
	case <-ctx.Done():
		return fixture.Command{}, ctx.Err()
	}
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.commands)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.commands)
}

// Dropped returns how many commands were overwritten since the queue was created.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
