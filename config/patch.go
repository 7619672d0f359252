package config

import (
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/profile"
)

// PatchedChannel stores which pin a dimmer channel is wired to.
type PatchedChannel struct {
	Channel fixture.Channel
	Pin     string
}

// PatchChannels maps every channel to its pin. Pins set in the config
// override the board profile.
func PatchChannels(p profile.Profile, overrides map[string]string) ([]PatchedChannel, error) {
	s := make([]PatchedChannel, 0, fixture.NumChannels)

	for _, ch := range fixture.Channels() {
		pin := ""
		if int(ch) < len(p.Pins) {
			pin = p.Pins[ch]
		}
		if override, ok := overrides[ch.String()]; ok {
			pin = override
		}
		if pin == "" {
			return nil, errors.WithStackTrace(UnpatchedChannel{Channel: ch, Board: p.Name})
		}
		s = append(s, PatchedChannel{Channel: ch, Pin: pin})
	}

	return s, nil
}

// PinMap turns the patch into the pin lookup the hardware output takes.
func PinMap(patch []PatchedChannel) map[fixture.Channel]string {
	out := make(map[fixture.Channel]string, len(patch))
	for _, p := range patch {
		out[p.Channel] = p.Pin
	}
	return out
}
