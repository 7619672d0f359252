package fixture

import (
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/logger"
	"github.com/sirupsen/logrus"
)

type simChannel struct {
	maxDuty     uint32
	frequencyHz uint32
	duty        uint32
}

// SimOutput is an Output without hardware. It keeps the last duty per channel
// and logs every change, which is enough to run the dimmer on a workstation.
type SimOutput struct {
	channels map[Channel]*simChannel
	lock     sync.Mutex
}

// NewSimOutput returns a SimOutput with no configured channels.
func NewSimOutput() *SimOutput {
	return &SimOutput{
		channels: make(map[Channel]*simChannel),
	}
}

// ConfigureChannel implements Output.
func (o *SimOutput) ConfigureChannel(ch Channel, resolution uint8, frequencyHz uint32) error {
	if !ch.Valid() {
		return errors.WithStackTrace(InvalidChannel{Channel: uint8(ch)})
	}

	o.lock.Lock()
	defer o.lock.Unlock()
	o.channels[ch] = &simChannel{
		maxDuty:     1<<resolution - 1,
		frequencyHz: frequencyHz,
	}

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"channel": ch, "resolution": resolution, "freq_hz": frequencyHz}).Info("Configured simulated PWM channel")
	return nil
}

// ApplyDuty implements Output.
func (o *SimOutput) ApplyDuty(ch Channel, duty uint32) error {
	o.lock.Lock()
	defer o.lock.Unlock()

	c, ok := o.channels[ch]
	if !ok {
		return errors.WithStackTrace(NotConfigured{Channel: ch})
	}
	if duty > c.maxDuty {
		return errors.WithStackTrace(DutyOutOfRange{Channel: ch, Duty: duty, MaxDuty: c.maxDuty})
	}
	c.duty = duty

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"channel": ch, "duty": duty}).Debug("Simulated duty applied")
	return nil
}

// Duty returns the last duty applied to a channel and whether the channel is configured.
func (o *SimOutput) Duty(ch Channel) (uint32, bool) {
	o.lock.Lock()
	defer o.lock.Unlock()

	c, ok := o.channels[ch]
	if !ok {
		return 0, false
	}
	return c.duty, true
}
