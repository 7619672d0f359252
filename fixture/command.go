package fixture

import (
	"fmt"

	"github.com/gruntwork-io/go-commons/errors"
)

// CommandSize is the wire size of a command: one channel byte, one brightness byte.
const CommandSize = 2

// Command asks for a channel to be set to a brightness. Brightness above 100 is
// accepted and treated as 100 when it is applied.
type Command struct {
	Channel    Channel
	Brightness uint8
}

func (c Command) String() string {
	return fmt.Sprintf("%s=%d", c.Channel, c.Brightness)
}

// MarshalBinary encodes the command as {channel, brightness}.
func (c Command) MarshalBinary() ([]byte, error) {
	return []byte{byte(c.Channel), c.Brightness}, nil
}

// DecodeCommand parses a {channel, brightness} payload as written by a remote.
func DecodeCommand(payload []byte) (Command, error) {
	if len(payload) != CommandSize {
		return Command{}, errors.WithStackTrace(InvalidPayloadLength{Length: len(payload)})
	}

	ch := Channel(payload[0])
	if !ch.Valid() {
		return Command{}, errors.WithStackTrace(InvalidChannel{Channel: payload[0]})
	}

	return Command{Channel: ch, Brightness: payload[1]}, nil
}
