package cuelist

import (
	"context"
	"sync"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
	"github.com/robmorgan/glow/utils"
	"github.com/sirupsen/logrus"
)

// Master owns the command queue and is its only consumer. It converts each
// command to a duty, drives the output and records what was applied.
type Master struct {
	queue     *Queue
	output    fixture.Output
	state     *fixture.State
	converter utils.DutyConverter

	// done is closed when ProcessQueue returns
	done chan struct{}
}

// InitializeMaster wires a master to its queue, output and state.
func InitializeMaster(output fixture.Output, state *fixture.State, queue *Queue, converter utils.DutyConverter) *Master {
	return &Master{
		queue:     queue,
		output:    output,
		state:     state,
		converter: converter,
		done:      make(chan struct{}),
	}
}

// Done is closed once the actuator loop has applied its last command and returned.
func (m *Master) Done() <-chan struct{} {
	return m.done
}

// ConfigureOutputs sets up every channel on the output at the converter's resolution.
func (m *Master) ConfigureOutputs(frequencyHz uint32) error {
	for _, ch := range fixture.Channels() {
		if err := m.output.ConfigureChannel(ch, m.converter.Resolution, frequencyHz); err != nil {
			return err
		}
	}
	return nil
}

// GetState returns the state the master records applied brightness into.
func (m *Master) GetState() *fixture.State {
	return m.state
}

// Enqueue posts a command without validating it.
func (m *Master) Enqueue(cmd fixture.Command) {
	m.queue.Enqueue(cmd)
}

// PushCommand is the entry point for remote transports. It never blocks;
// commands for unknown channels are logged and dropped.
func (m *Master) PushCommand(ch fixture.Channel, brightness uint8) {
	if !ch.Valid() {
		logger := logger.GetProjectLogger()
		logger.WithFields(logrus.Fields{"channel": uint8(ch), "brightness": brightness}).Warn("Ignoring command for unknown channel")
		return
	}
	m.queue.Enqueue(fixture.Command{Channel: ch, Brightness: brightness})
}

// ProcessForever starts the actuator loop in its own goroutine.
func (m *Master) ProcessForever(ctx context.Context, wg *sync.WaitGroup) {
	logger := logger.GetProjectLogger()
	logger.Info("Processing commands...")

	wg.Add(1)
	go m.ProcessQueue(ctx, wg)
}

// ProcessQueue applies commands in arrival order until ctx is done. Failed
// commands are logged and skipped.
func (m *Master) ProcessQueue(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(m.done)

	logger := logger.GetProjectLogger()
	logger.Printf("ProcessQueue started at %v, capacity=%d", time.Now(), m.queue.Cap())

	for {
		cmd, err := m.queue.Dequeue(ctx)
		if err != nil {
			logger.Printf("ProcessQueue shutdown, dropped=%d", m.queue.Dropped())
			return
		}
		_ = m.Apply(cmd)
	}
}

// Apply drives one command to the output. Brightness above 100 is applied and
// recorded as 100. State is only updated when the output accepted the duty.
func (m *Master) Apply(cmd fixture.Command) error {
	logger := logger.GetProjectLogger()

	if !cmd.Channel.Valid() {
		err := errors.WithStackTrace(fixture.InvalidChannel{Channel: uint8(cmd.Channel)})
		logger.Errorf("Cannot apply command %s: %v", cmd, err)
		return err
	}

	brightness := utils.ClampBrightness(cmd.Brightness)
	duty := m.converter.Convert(brightness)
	fields := logrus.Fields{"channel": cmd.Channel, "brightness": brightness, "duty": duty}

	if err := m.output.ApplyDuty(cmd.Channel, duty); err != nil {
		logger.WithFields(fields).Errorf("Failed to apply duty: %v", err)
		return err
	}
	m.state.Set(cmd.Channel, brightness)

	logger.WithFields(fields).Debug("Applied command")
	return nil
}
