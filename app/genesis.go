package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Genesis file format. Each section of AppState is read by the initializer
// of one extension, the "app" section by this package.
type Genesis struct {
	AppState custody.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return &gen, nil
}

// Config is the "app" section of the genesis. It is persisted, so that the
// account identity survives restarts.
type Config struct {
	// Account is the address of the hosted custody account.
	Account common.Address `json:"account"`
	// Token, if set, is the address of the cash token call target.
	Token common.Address `json:"token"`
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.Account == (common.Address{}) {
		return errors.Wrap(errors.ErrEmpty, "account")
	}
	if c.Token == c.Account {
		return errors.Wrap(errors.ErrInput, "token cannot be the account")
	}
	return nil
}

var configRecord = orm.NewRecord("_app", "config")

func loadConfig(db custody.ReadOnlyKVStore) (*Config, bool, error) {
	var c Config
	ok, err := configRecord.Load(db, &c)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &c, true, nil
}

// configInitializer stores the "app" section.
type configInitializer struct{}

func (configInitializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var c Config
	if err := opts.ReadOptions("app", &c); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "app")
	}
	return configRecord.Save(db, &c)
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...custody.Initializer) custody.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []custody.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
