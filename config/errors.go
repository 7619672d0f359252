package config

import (
	"fmt"

	"github.com/robmorgan/glow/fixture"
)

type UnknownBoard struct {
	Board string
}

func (err UnknownBoard) Error() string {
	return fmt.Sprintf("unknown board profile %q", err.Board)
}

type UnpatchedChannel struct {
	Channel fixture.Channel
	Board   string
}

func (err UnpatchedChannel) Error() string {
	return fmt.Sprintf("%s has no pin on board %q", err.Channel, err.Board)
}

// InvalidConfig is returned by Validate with the offending field.
type InvalidConfig struct {
	Field  string
	Reason string
}

func (err InvalidConfig) Error() string {
	return fmt.Sprintf("invalid config %s: %s", err.Field, err.Reason)
}
