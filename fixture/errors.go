package fixture

import "fmt"

// InvalidChannel is returned when a channel number does not map to an output.
type InvalidChannel struct {
	Channel uint8
}

func (err InvalidChannel) Error() string {
	return fmt.Sprintf("invalid channel %d, expected 0..%d", err.Channel, NumChannels-1)
}

// InvalidPayloadLength is returned when a command payload is not exactly CommandSize bytes.
type InvalidPayloadLength struct {
	Length int
}

func (err InvalidPayloadLength) Error() string {
	return fmt.Sprintf("invalid command payload length %d, expected %d", err.Length, CommandSize)
}

// UnknownPin is returned when the board has no pin with the patched name.
type UnknownPin struct {
	Pin string
}

func (err UnknownPin) Error() string {
	return fmt.Sprintf("no gpio pin named %q", err.Pin)
}

// NotConfigured is returned when a duty is applied to a channel that was never configured.
type NotConfigured struct {
	Channel Channel
}

func (err NotConfigured) Error() string {
	return fmt.Sprintf("%s has not been configured", err.Channel)
}

// DutyOutOfRange is returned when a duty exceeds the configured resolution.
type DutyOutOfRange struct {
	Channel Channel
	Duty    uint32
	MaxDuty uint32
}

func (err DutyOutOfRange) Error() string {
	return fmt.Sprintf("duty %d out of range for %s (max %d)", err.Duty, err.Channel, err.MaxDuty)
}
