package storage

import (
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "glow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordUint16IsLittleEndian(t *testing.T) {
	t.Parallel()

	r := Record{40, 70}
	assert.Equal(t, uint16(70<<8|40), r.Uint16())
	assert.Equal(t, r, RecordFromUint16(r.Uint16()))
	assert.Equal(t, "040, 070", r.String())
}

func TestMemoryStoreSuppressesUnchangedWrites(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	r, err := store.GetRecord()
	require.NoError(t, err)
	require.Equal(t, Record{}, r)

	require.NoError(t, store.SetRecord(Record{}))
	require.Equal(t, 0, store.Writes())

	require.NoError(t, store.SetRecord(Record{40, 70}))
	require.NoError(t, store.SetRecord(Record{40, 70}))
	require.Equal(t, 1, store.Writes())

	require.NoError(t, store.SetRecord(Record{40, 71}))
	require.Equal(t, 2, store.Writes())

	r, err = store.GetRecord()
	require.NoError(t, err)
	require.Equal(t, Record{40, 71}, r)
}

func TestSQLiteStoreEmptyReadsZero(t *testing.T) {
	t.Parallel()

	store := newTestSQLiteStore(t)
	r, err := store.GetRecord()
	require.NoError(t, err)
	assert.Equal(t, Record{}, r)
}

func TestSQLiteStoreSuppressesUnchangedWrites(t *testing.T) {
	t.Parallel()

	store := newTestSQLiteStore(t)

	require.NoError(t, store.SetRecord(Record{}))
	require.Equal(t, uint64(0), store.Writes())

	require.NoError(t, store.SetRecord(Record{40, 70}))
	require.NoError(t, store.SetRecord(Record{40, 70}))
	require.Equal(t, uint64(1), store.Writes())

	require.NoError(t, store.SetRecord(Record{0, 100}))
	require.Equal(t, uint64(2), store.Writes())

	r, err := store.GetRecord()
	require.NoError(t, err)
	assert.Equal(t, Record{0, 100}, r)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "glow.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetRecord(Record{40, 70}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, path, reopened.Path())

	r, err := reopened.GetRecord()
	require.NoError(t, err)
	assert.Equal(t, Record{40, 70}, r)

	var raw int64
	require.NoError(t, reopened.db.QueryRow("SELECT value FROM kv WHERE key = ?", RecordKey).Scan(&raw))
	assert.Equal(t, int64(70<<8|40), raw)
}

func TestSQLiteStoreRejectsCorruptValue(t *testing.T) {
	t.Parallel()

	store := newTestSQLiteStore(t)
	_, err := store.db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", RecordKey, 70000)
	require.NoError(t, err)

	_, err = store.GetRecord()
	require.Error(t, err)
	assert.IsType(t, CorruptRecord{}, errors.Unwrap(err))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	store, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(DriverSQLite, filepath.Join(t.TempDir(), "glow.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open("eeprom", "")
	require.Error(t, err)
	assert.Equal(t, UnknownDriver{Driver: "eeprom"}, errors.Unwrap(err))
}

type recordingQueue struct {
	commands []fixture.Command
}

func (q *recordingQueue) Enqueue(cmd fixture.Command) {
	q.commands = append(q.commands, cmd)
}

func TestRestoreEnqueuesChannelsInOrder(t *testing.T) {
	t.Parallel()

	store := newTestSQLiteStore(t)
	require.NoError(t, store.SetRecord(Record{40, 70}))

	q := &recordingQueue{}
	r, err := Restore(store, q)
	require.NoError(t, err)
	assert.Equal(t, Record{40, 70}, r)
	assert.Equal(t, []fixture.Command{
		{Channel: fixture.Channel0, Brightness: 40},
		{Channel: fixture.Channel1, Brightness: 70},
	}, q.commands)
}

func TestRestoreFromEmptyStore(t *testing.T) {
	t.Parallel()

	q := &recordingQueue{}
	r, err := Restore(NewMemoryStore(), q)
	require.NoError(t, err)
	assert.Equal(t, Record{}, r)
	assert.Equal(t, []fixture.Command{
		{Channel: fixture.Channel0, Brightness: 0},
		{Channel: fixture.Channel1, Brightness: 0},
	}, q.commands)
}

type failingStore struct {
	MemoryStore
}

func (s *failingStore) GetRecord() (Record, error) {
	return Record{}, errors.WithStackTrace(CorruptRecord{Key: RecordKey, Value: -1})
}

func TestRestoreReturnsReadError(t *testing.T) {
	t.Parallel()

	q := &recordingQueue{}
	_, err := Restore(&failingStore{}, q)
	require.Error(t, err)
	assert.Empty(t, q.commands)
}
