package store

import (
	"github.com/iov-one/custody/errors"
	dbm "github.com/tendermint/tm-db"
)

// TMStore exposes a tm-db database as a committed KVStore. All writes of a
// cache wrap are flushed in a single synchronous database batch, so a crash
// never leaves half of an action on disk.
type TMStore struct {
	db dbm.DB
}

var _ CacheableKVStore = TMStore{}

// NewTMStore wraps the given database.
func NewTMStore(db dbm.DB) TMStore {
	return TMStore{db: db}
}

// Get returns nil iff key doesn't exist.
func (s TMStore) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return v, nil
}

// Has checks if a key exists.
func (s TMStore) Has(key []byte) (bool, error) {
	ok, err := s.db.Has(key)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Set writes directly to the database.
func (s TMStore) Set(key, value []byte) error {
	if err := s.db.Set(key, value); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes the key directly from the database.
func (s TMStore) Delete(key []byte) error {
	if err := s.db.Delete(key); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// NewBatch returns an atomic database batch.
func (s TMStore) NewBatch() Batch {
	return &tmBatch{batch: s.db.NewBatch()}
}

// CacheWrap returns a btree scratch-pad that is flushed to the database
// in one batch on Write.
func (s TMStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Close releases the underlying database.
func (s TMStore) Close() error {
	return s.db.Close()
}

type tmBatch struct {
	batch dbm.Batch
}

var _ Batch = (*tmBatch)(nil)

func (b *tmBatch) Set(key, value []byte) error {
	if err := b.batch.Set(key, value); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b *tmBatch) Delete(key []byte) error {
	if err := b.batch.Delete(key); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Write flushes the batch with fsync and releases it.
func (b *tmBatch) Write() error {
	defer b.batch.Close()
	if err := b.batch.WriteSync(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
