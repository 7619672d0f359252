package fixture

import "sync"

// State holds the last brightness applied to each channel.
//
// Only the actuator writes it; the persistence loop reads it through Snapshot.
type State struct {
	brightness [NumChannels]uint8
	lock       sync.RWMutex
}

// NewState returns a State with every channel at 0.
func NewState() *State {
	return &State{}
}

// Set records the brightness for a channel. Invalid channels are ignored.
func (s *State) Set(ch Channel, brightness uint8) {
	if !ch.Valid() {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.brightness[ch] = brightness
}

// Get returns the brightness last recorded for a channel.
func (s *State) Get(ch Channel) uint8 {
	if !ch.Valid() {
		return 0
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.brightness[ch]
}

// Snapshot copies both channels at once.
func (s *State) Snapshot() [NumChannels]uint8 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.brightness
}
