package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/robmorgan/glow/fixture"
)

// RecordKey is the key the brightness record is stored under.
const RecordKey = "storage"

// Record is the persisted brightness of every channel, indexed by channel.
type Record [fixture.NumChannels]uint8

// Store is a non-volatile key-value store holding a single Record.
type Store interface {
	// GetRecord returns the stored record, or the zero record if nothing was ever written.
	GetRecord() (Record, error)

	// SetRecord writes r unless it equals the stored record.
	SetRecord(r Record) error

	Close() error
}

// Uint16 packs the record the way it sits in flash: channel 0 in the low byte.
func (r Record) Uint16() uint16 {
	return binary.LittleEndian.Uint16(r[:])
}

// RecordFromUint16 is the inverse of Record.Uint16.
func RecordFromUint16(v uint16) Record {
	r := Record{}
	binary.LittleEndian.PutUint16(r[:], v)
	return r
}

func (r Record) String() string {
	return fmt.Sprintf("%03d, %03d", r[fixture.Channel0], r[fixture.Channel1])
}
