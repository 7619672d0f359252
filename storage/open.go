package storage

import "github.com/gruntwork-io/go-commons/errors"

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open returns the store for driver. path is only used by the sqlite driver.
func Open(driver string, path string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, errors.WithStackTrace(UnknownDriver{Driver: driver})
	}
}
