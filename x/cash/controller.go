package cash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/multisig"
)

const bucketName = "cash"

// maxBalance is the biggest balance a uint256 can represent.
var maxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Controller reads and moves balances.
type Controller struct{}

var _ multisig.Bank = Controller{}

// NewController returns a controller over the cash balances.
func NewController() Controller {
	return Controller{}
}

func balanceRecord(owner common.Address) orm.Record {
	return orm.NewRecord(bucketName, owner.Hex())
}

// BalanceOf returns the balance of the owner. An address that never held
// anything has a zero balance.
func (Controller) BalanceOf(db custody.ReadOnlyKVStore, owner common.Address) (*big.Int, error) {
	balance := new(big.Int)
	if _, err := balanceRecord(owner).Load(db, balance); err != nil {
		return nil, errors.Wrapf(err, "balance of %s", owner.Hex())
	}
	return balance, nil
}

// Transfer moves the given amount from src to dest.
// If src doesn't have sufficient balance, it fails.
func (c Controller) Transfer(db custody.KVStore, src, dest common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}

	sender, err := c.BalanceOf(db, src)
	if err != nil {
		return err
	}
	if sender.Cmp(amount) < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %s, wanted %s", sender, amount)
	}
	if src == dest {
		return nil
	}
	recipient, err := c.BalanceOf(db, dest)
	if err != nil {
		return err
	}
	recipient.Add(recipient, amount)
	if recipient.Cmp(maxBalance) > 0 {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest.Hex())
	}
	sender.Sub(sender, amount)

	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

// Issue adds the given amount to the destination balance. Fails if it
// overflows the balance.
func (c Controller) Issue(db custody.KVStore, dest common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrap(errors.ErrAmount, "negative issue")
	}
	balance, err := c.BalanceOf(db, dest)
	if err != nil {
		return err
	}
	balance.Add(balance, amount)
	if balance.Cmp(maxBalance) > 0 {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest.Hex())
	}
	return c.save(db, dest, balance)
}

func (Controller) save(db custody.KVStore, owner common.Address, balance *big.Int) error {
	r := balanceRecord(owner)
	if balance.Sign() == 0 {
		return r.Delete(db)
	}
	return r.Save(db, balance)
}
