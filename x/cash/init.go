package cash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Amount can be
// given as a decimal or a 0x prefixed hex string.
type GenesisAccount struct {
	Address common.Address        `json:"address"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial balances from genesis
// and save them to the database
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c := NewController()
	for i, acct := range accts {
		if acct.Address == (common.Address{}) {
			return errors.Wrapf(errors.ErrEmpty, "account %d: address", i)
		}
		if acct.Amount == nil {
			return errors.Wrapf(errors.ErrEmpty, "account %d: amount", i)
		}
		if err := c.Issue(db, acct.Address, (*big.Int)(acct.Amount)); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
