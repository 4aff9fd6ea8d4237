package multisig

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Genesis is the "multisig" section of the genesis file.
type Genesis struct {
	Validators []common.Address `json:"validators"`
	// Threshold defaults to DefaultThreshold when omitted.
	Threshold      *uint64 `json:"threshold,omitempty"`
	BindValueNonce bool    `json:"bind_value_nonce,omitempty"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis creates the account registry and policy. The nonce starts at
// zero.
func (*Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions("multisig", &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	ok, err := db.Has(validatorsRecord.Key())
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrap(errors.ErrState, "account already initialized")
	}

	validators, err := NewRegistry(gen.Validators...)
	if err != nil {
		return errors.Wrap(err, "validators")
	}
	conf := Config{Threshold: DefaultThreshold, BindValueNonce: gen.BindValueNonce}
	if gen.Threshold != nil {
		conf.Threshold = *gen.Threshold
	}
	if err := saveValidators(db, validators); err != nil {
		return err
	}
	if err := saveConfig(db, &conf); err != nil {
		return errors.Wrap(err, "threshold")
	}
	return nil
}
