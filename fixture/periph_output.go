package fixture

import (
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/logger"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

type periphChannel struct {
	pin     gpio.PinOut
	maxDuty uint32
	freq    physic.Frequency
}

// PeriphOutput drives hardware PWM pins through periph.io. The host drivers
// must have been loaded with host.Init before channels are configured.
type PeriphOutput struct {
	pins     map[Channel]string
	channels map[Channel]*periphChannel
	lock     sync.Mutex

	// lookup resolves a pin name, gpioreg.ByName outside of tests.
	lookup func(name string) gpio.PinIO
}

// NewPeriphOutput returns an output that maps each channel to the named gpio pin.
func NewPeriphOutput(pins map[Channel]string) *PeriphOutput {
	return &PeriphOutput{
		pins:     pins,
		channels: make(map[Channel]*periphChannel),
		lookup:   gpioreg.ByName,
	}
}

// ConfigureChannel implements Output.
func (o *PeriphOutput) ConfigureChannel(ch Channel, resolution uint8, frequencyHz uint32) error {
	if !ch.Valid() {
		return errors.WithStackTrace(InvalidChannel{Channel: uint8(ch)})
	}

	name := o.pins[ch]
	pin := o.lookup(name)
	if pin == nil {
		return errors.WithStackTrace(UnknownPin{Pin: name})
	}

	o.lock.Lock()
	defer o.lock.Unlock()
	o.channels[ch] = &periphChannel{
		pin:     pin,
		maxDuty: 1<<resolution - 1,
		freq:    physic.Frequency(frequencyHz) * physic.Hertz,
	}

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"channel": ch, "pin": pin.Name(), "resolution": resolution, "freq_hz": frequencyHz}).Info("Configured PWM channel")
	return nil
}

// ApplyDuty implements Output.
func (o *PeriphOutput) ApplyDuty(ch Channel, duty uint32) error {
	o.lock.Lock()
	defer o.lock.Unlock()

	c, ok := o.channels[ch]
	if !ok {
		return errors.WithStackTrace(NotConfigured{Channel: ch})
	}
	if duty > c.maxDuty {
		return errors.WithStackTrace(DutyOutOfRange{Channel: ch, Duty: duty, MaxDuty: c.maxDuty})
	}

	if err := c.pin.PWM(scaleDuty(duty, c.maxDuty), c.freq); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

// scaleDuty converts a duty at the channel's resolution to periph's 24 bit duty.
func scaleDuty(duty, maxDuty uint32) gpio.Duty {
	if maxDuty == 0 {
		return 0
	}
	return gpio.Duty(uint64(duty) * uint64(gpio.DutyMax) / uint64(maxDuty))
}
