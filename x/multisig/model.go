package multisig

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

var (
	validatorsRecord = orm.NewRecord("multisig", "validators")
	configRecord     = orm.NewRecord("multisig", "config")
)

// Config is the persisted policy of an account.
type Config struct {
	// Threshold is the percentage of validators that must approve.
	Threshold uint64
	// BindValueNonce extends nonce binding to transfers and calls.
	BindValueNonce bool
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	return ValidateThreshold(c.Threshold)
}

// State is a snapshot of everything the quorum check depends on.
type State struct {
	Validators Registry
	Config
	Nonce uint64
}

// LoadState reads the account state. It fails with ErrState if the account
// was never initialized.
func LoadState(db custody.ReadOnlyKVStore) (*State, error) {
	validators, err := Validators(db)
	if err != nil {
		return nil, err
	}
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	nonce, err := NewNonceLedger().Current(db)
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	return &State{Validators: validators, Config: *conf, Nonce: nonce}, nil
}

// Validators returns the registry in its current order.
func Validators(db custody.ReadOnlyKVStore) (Registry, error) {
	var addrs []common.Address
	ok, err := validatorsRecord.Load(db, &addrs)
	if err != nil {
		return nil, errors.Wrap(err, "validators")
	}
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "account not initialized")
	}
	return Registry(addrs), nil
}

// ValidatorCount returns the registry length.
func ValidatorCount(db custody.ReadOnlyKVStore) (int, error) {
	r, err := Validators(db)
	if err != nil {
		return 0, err
	}
	return r.Len(), nil
}

// ValidatorAt returns the validator at given index of the registry.
func ValidatorAt(db custody.ReadOnlyKVStore, i int) (common.Address, error) {
	r, err := Validators(db)
	if err != nil {
		return common.Address{}, err
	}
	return r.At(i)
}

// Threshold returns the current threshold percentage.
func Threshold(db custody.ReadOnlyKVStore) (uint64, error) {
	c, err := loadConfig(db)
	if err != nil {
		return 0, err
	}
	return c.Threshold, nil
}

func loadConfig(db custody.ReadOnlyKVStore) (*Config, error) {
	var c Config
	ok, err := configRecord.Load(db, &c)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "account not initialized")
	}
	return &c, nil
}

func saveValidators(db custody.KVStore, r Registry) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return validatorsRecord.Save(db, []common.Address(r))
}

func saveConfig(db custody.KVStore, c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return configRecord.Save(db, c)
}
