package storage

import (
	"context"
	"sync"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
	"k8s.io/utils/clock"
)

// DefaultPersistInterval is how often the applied brightness is flushed to the store.
const DefaultPersistInterval = 60 * time.Second

// StateSource is anything that can report the currently applied brightness.
type StateSource interface {
	Snapshot() [fixture.NumChannels]uint8
}

// Enqueuer accepts commands for the actuator.
type Enqueuer interface {
	Enqueue(cmd fixture.Command)
}

// PersistWorker writes the current state to store every interval until ctx is
// done, then flushes once more. The final flush waits for drained to close so
// it sees the last command the actuator applied; a nil drained flushes
// straight away. The store decides whether anything is physically written.
func PersistWorker(ctx context.Context, clk clock.WithTicker, interval time.Duration, state StateSource, store Store, drained <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := logger.GetProjectLogger()
	if interval <= 0 {
		interval = DefaultPersistInterval
	}

	t := clk.NewTicker(interval)
	defer t.Stop()
	logger.Printf("PersistWorker started at %v, interval=%s", clk.Now(), interval)

	for {
		select {
		case <-ctx.Done():
			if drained != nil {
				<-drained
			}
			persist(state, store)
			logger.Println("PersistWorker shutdown")
			return
		case <-t.C():
			persist(state, store)
		}
	}
}

func persist(state StateSource, store Store) {
	if err := store.SetRecord(Record(state.Snapshot())); err != nil {
		logger := logger.GetProjectLogger()
		logger.Errorf("Failed to persist brightness: %s", errors.PrintErrorWithStackTrace(err))
	}
}

// Restore reads the persisted record and enqueues one command per channel, in
// channel order. It must run before any other producer is started.
func Restore(store Store, queue Enqueuer) (Record, error) {
	r, err := store.GetRecord()
	if err != nil {
		return Record{}, err
	}

	for _, ch := range fixture.Channels() {
		queue.Enqueue(fixture.Command{Channel: ch, Brightness: r[ch]})
	}

	logger := logger.GetProjectLogger()
	logger.Infof("Restored brightness %s", r)
	return r, nil
}
