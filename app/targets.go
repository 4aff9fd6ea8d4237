package app

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/multisig"
)

// Targets executes forwarded calls. Value sent with a call is moved from
// the account to the target before the target runs, and the whole call runs
// in its own cache wrap, so a failing target leaves nothing behind.
//
// An address without a registered target only accepts plain value, that is
// a call with neither selector nor data.
type Targets struct {
	bank    multisig.Bank
	targets map[common.Address]multisig.Caller
}

var _ multisig.Caller = (*Targets)(nil)

// NewTargets returns an empty set of targets moving value with the bank.
func NewTargets(bank multisig.Bank) *Targets {
	return &Targets{
		bank:    bank,
		targets: make(map[common.Address]multisig.Caller),
	}
}

// Register makes the target callable at given address, replacing any
// previous one.
func (t *Targets) Register(addr common.Address, target multisig.Caller) {
	t.targets[addr] = target
}

// Call implements multisig.Caller.
func (t *Targets) Call(ctx custody.Context, db custody.KVStore, call multisig.Call) ([]byte, error) {
	target, ok := t.targets[call.Target]
	if !ok && (call.Selector != "" || len(call.Data) > 0) {
		return nil, errors.Wrapf(errors.ErrNotFound, "no target at %s", call.Target.Hex())
	}

	cacheable, isCacheable := db.(custody.CacheableKVStore)
	if !isCacheable {
		return t.call(ctx, db, target, call)
	}
	cache := cacheable.CacheWrap()
	out, err := t.call(ctx, cache, target, call)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Targets) call(ctx custody.Context, db custody.KVStore, target multisig.Caller, call multisig.Call) ([]byte, error) {
	if call.Value != nil && call.Value.Sign() > 0 {
		if err := t.bank.Transfer(db, call.From, call.Target, call.Value); err != nil {
			return nil, errors.Wrap(err, "call value")
		}
	}
	if target == nil {
		return nil, nil
	}
	return target.Call(ctx, db, call)
}
