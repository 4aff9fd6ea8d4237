package orm

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Record is a single value stored under a fixed key. Values are serialized
// using RLP, so any type supported by the rlp package can be stored.
type Record struct {
	key []byte
}

// NewRecord returns a record stored under the key:
//    <bucket>:<name>
func NewRecord(bucket, name string) Record {
	return Record{key: []byte(bucket + ":" + name)}
}

// Key returns the database key of this record.
func (r Record) Key() []byte {
	return r.key
}

// Load decodes the stored value into dest. It returns false if nothing was
// ever saved under this key, in which case dest is not modified.
func (r Record) Load(db custody.ReadOnlyKVStore, dest interface{}) (bool, error) {
	raw, err := db.Get(r.key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := rlp.DecodeBytes(raw, dest); err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "cannot decode %q: %s", r.key, err)
	}
	return true, nil
}

// Save serializes given value and writes it under this record key.
func (r Record) Save(db custody.KVStore, src interface{}) error {
	raw, err := rlp.EncodeToBytes(src)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode %q: %s", r.key, err)
	}
	return db.Set(r.key, raw)
}

// Delete removes the stored value, if any.
func (r Record) Delete(db custody.KVStore) error {
	return db.Delete(r.key)
}
