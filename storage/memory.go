package storage

import (
	"sync"

	"github.com/robmorgan/glow/logger"
)

// MemoryStore keeps the record in memory. It is used for host runs without a
// database and in tests; Writes counts physical writes.
type MemoryStore struct {
	lock    sync.Mutex
	record  Record
	written bool
	writes  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetRecord() (Record, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.record, nil
}

func (s *MemoryStore) SetRecord(r Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.written && s.record == r {
		return nil
	}
	// the zero record is what a never-written store reads as
	if !s.written && r == (Record{}) {
		return nil
	}

	s.record = r
	s.written = true
	s.writes++

	logger := logger.GetProjectLogger()
	logger.Infof("values set to: %s", r)
	return nil
}

// Writes returns how many times the record was physically written.
func (s *MemoryStore) Writes() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.writes
}

func (s *MemoryStore) Close() error {
	return nil
}
