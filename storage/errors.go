package storage

import "fmt"

// UnknownDriver is returned when a store is requested for a driver we don't have.
type UnknownDriver struct {
	Driver string
}

func (err UnknownDriver) Error() string {
	return fmt.Sprintf("unknown store driver %q, expected one of memory, sqlite", err.Driver)
}

// CorruptRecord is returned when the stored value cannot be a brightness record.
type CorruptRecord struct {
	Key   string
	Value int64
}

func (err CorruptRecord) Error() string {
	return fmt.Sprintf("value %d stored under %q is not a brightness record", err.Value, err.Key)
}
