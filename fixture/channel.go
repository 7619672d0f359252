package fixture

import "fmt"

// Channel identifies one physical PWM output.
type Channel uint8

const (
	// Channel0 drives the inner LED string.
	Channel0 Channel = iota
	// Channel1 drives the outer LED string.
	Channel1

	// NumChannels is the number of outputs on the board.
	NumChannels = 2
)

// Channels lists every output in ordinal order.
func Channels() []Channel {
	return []Channel{Channel0, Channel1}
}

// Valid reports whether c names a real output.
func (c Channel) Valid() bool {
	return c < NumChannels
}

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("channel(%d)", uint8(c))
	}
	return fmt.Sprintf("channel%d", uint8(c))
}
