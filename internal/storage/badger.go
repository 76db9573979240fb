package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"brewd/internal/machine"
)

var snapshotBadgerKey = []byte("machine:state")

// Badger stores the snapshot under a fixed key in a BadgerDB value log.
type Badger struct {
	db *badger.DB
}

func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(filepath.Clean(path))
	opts.Logger = nil                         // badger's own logging is too chatty here
	opts = opts.WithValueLogFileSize(1 << 20) // smaller value log for local use
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Load(_ context.Context) (*machine.Snapshot, error) {
	var snap machine.Snapshot
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotBadgerKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(v []byte) error {
			if err := json.Unmarshal(v, &snap); err != nil {
				return &CorruptError{Source: "badger:" + string(snapshotBadgerKey), Err: err}
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &snap, nil
}

func (b *Badger) Save(_ context.Context, snap *machine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotBadgerKey, data)
	})
}

func (b *Badger) Close() error {
	return b.db.Close()
}
