package multisig

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/require"
)

// fixture is an initialized account with its validator keys.
type fixture struct {
	keys    []*crypto.PrivateKey
	account common.Address
	db      custody.CacheableKVStore
	ctx     custody.Context
	bank    *testBank
}

func newFixture(t testing.TB, validators int, gen Genesis) *fixture {
	t.Helper()
	keys := custodytest.NewKeys(validators)
	gen.Validators = custodytest.Addresses(keys)
	raw, err := json.Marshal(gen)
	require.NoError(t, err)

	db := store.MemStore()
	var initializer Initializer
	require.NoError(t, initializer.FromGenesis(custody.Options{"multisig": raw}, db))

	account := custodytest.NewAddress()
	return &fixture{
		keys:    keys,
		account: account,
		db:      db,
		ctx:     custody.WithAccount(context.Background(), account),
		bank:    &testBank{},
	}
}

// tx returns the action signed by given keys against the current state.
func (f *fixture) tx(t testing.TB, action Action, keys ...*crypto.PrivateKey) *Tx {
	t.Helper()
	st, err := LoadState(f.db)
	require.NoError(t, err)
	digest, err := ActionDigest(f.account, action, st)
	require.NoError(t, err)
	return &Tx{Msg: action, Signatures: custodytest.Sign(t, digest, keys...)}
}

// snapshot returns everything a rejected message must leave untouched.
func (f *fixture) snapshot(t testing.TB, holders ...common.Address) interface{} {
	t.Helper()
	st, err := LoadState(f.db)
	require.NoError(t, err)
	balances := make([]string, 0, len(holders))
	for _, h := range holders {
		b, err := f.bank.BalanceOf(f.db, h)
		require.NoError(t, err)
		balances = append(balances, b.String())
	}
	return struct {
		State    State
		Balances []string
	}{*st, balances}
}

// testBank keeps balances as big endian integers under "bank:<address>".
type testBank struct{}

var _ Bank = (*testBank)(nil)

func bankKey(a common.Address) []byte {
	return append([]byte("bank:"), a.Bytes()...)
}

func (*testBank) BalanceOf(db custody.ReadOnlyKVStore, owner common.Address) (*big.Int, error) {
	raw, err := db.Get(bankKey(owner))
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

func (b *testBank) Issue(db custody.KVStore, owner common.Address, amount int64) error {
	have, err := b.BalanceOf(db, owner)
	if err != nil {
		return err
	}
	return db.Set(bankKey(owner), have.Add(have, big.NewInt(amount)).Bytes())
}

func (b *testBank) Transfer(db custody.KVStore, from, to common.Address, amount *big.Int) error {
	src, err := b.BalanceOf(db, from)
	if err != nil {
		return err
	}
	if src.Cmp(amount) < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %s", src)
	}
	dst, err := b.BalanceOf(db, to)
	if err != nil {
		return err
	}
	if err := db.Set(bankKey(from), src.Sub(src, amount).Bytes()); err != nil {
		return err
	}
	return db.Set(bankKey(to), dst.Add(dst, amount).Bytes())
}

// testCaller records forwarded calls and returns a preset result.
type testCaller struct {
	calls []Call
	out   []byte
	err   error
}

var _ Caller = (*testCaller)(nil)

func (c *testCaller) Call(ctx custody.Context, db custody.KVStore, call Call) ([]byte, error) {
	c.calls = append(c.calls, call)
	return c.out, c.err
}
