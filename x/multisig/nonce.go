package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/orm"
)

// NonceLedger is the replay counter of an account. It starts at zero and
// grows by one with every applied message bound to it.
type NonceLedger struct {
	seq orm.Sequence
}

// NewNonceLedger returns the ledger stored under _s.multisig:nonce.
func NewNonceLedger() *NonceLedger {
	return &NonceLedger{seq: orm.NewSequence("multisig", "nonce")}
}

// Current returns the nonce the next bound message must be signed for.
func (n *NonceLedger) Current(db custody.ReadOnlyKVStore) (uint64, error) {
	return n.seq.Latest(db)
}

// Advance increments the nonce and returns the new value.
func (n *NonceLedger) Advance(db custody.KVStore) (uint64, error) {
	return n.seq.NextInt(db)
}
