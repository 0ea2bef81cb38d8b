package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// bump when the snapshot layout changes
const snapshotSchema uint16 = 1

type snapshot struct {
	Schema  uint16
	Entries []snapshotEntry
}

type snapshotEntry struct {
	Key []byte
	R   []float64
}

// Save writes every entry, oldest first, to path. The file is replaced
// atomically.
func (m *Memo) Save(path string) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	snap := snapshot{Schema: snapshotSchema, Entries: make([]snapshotEntry, 0, len(m.entries))}
	m.order.Traverse(func(_ int, k Key) {
		snap.Entries = append(snap.Entries, snapshotEntry{Key: append([]byte(nil), k[:]...), R: m.entries[k]})
	})
	m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "memo-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Load merges a snapshot written by Save. A missing file reports false and
// no error.
func (m *Memo) Load(path string) (bool, error) {
	if m == nil {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var snap snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", path, err)
	}
	if snap.Schema != snapshotSchema {
		return false, fmt.Errorf("cache: %s has schema %d, want %d", path, snap.Schema, snapshotSchema)
	}

	keys := make([]Key, len(snap.Entries))
	for i, e := range snap.Entries {
		if len(e.Key) != len(keys[i]) {
			return false, fmt.Errorf("cache: %s holds a %d-byte key", path, len(e.Key))
		}
		copy(keys[i][:], e.Key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range snap.Entries {
		m.put(keys[i], e.R)
	}
	return true, nil
}
