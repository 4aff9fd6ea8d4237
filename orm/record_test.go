package orm

import (
	"math/big"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestRecord(t *testing.T) {
	db := store.MemStore()
	r := NewRecord("test", "amount")
	assert.Equal(t, []byte("test:amount"), r.Key())

	var got big.Int
	ok, err := r.Load(db, &got)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	assert.Nil(t, r.Save(db, big.NewInt(10000)))
	ok, err = r.Load(db, &got)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(10000), got.Int64())

	assert.Nil(t, r.Delete(db))
	ok, err = r.Load(db, &got)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestRecordCorrupted(t *testing.T) {
	db := store.MemStore()
	r := NewRecord("test", "list")
	assert.Nil(t, db.Set(r.Key(), []byte{0xff}))

	var got []uint64
	_, err := r.Load(db, &got)
	assert.IsErr(t, errors.ErrDatabase, err)
}
