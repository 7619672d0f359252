package transport

import (
	"fmt"
	"time"
)

// ConnectTimeout is returned when the broker does not accept the connection in time.
type ConnectTimeout struct {
	Broker  string
	Timeout time.Duration
}

func (err ConnectTimeout) Error() string {
	return fmt.Sprintf("timed out after %s connecting to %s", err.Timeout, err.Broker)
}
