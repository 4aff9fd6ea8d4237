package cash

import (
	"context"
	"math/big"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/multisig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenTransfer(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	token := NewToken(c)
	owner := custodytest.NewAddress()
	to := custodytest.NewAddress()
	require.NoError(t, c.Issue(db, owner, big.NewInt(10000)))

	data, err := TransferData(to, big.NewInt(1000))
	require.NoError(t, err)

	out, err := token.Call(context.Background(), db, multisig.Call{
		From:     owner,
		Target:   custodytest.NewAddress(),
		Value:    big.NewInt(0),
		Selector: "transfer(address,uint256)",
		Data:     data,
	})
	require.NoError(t, err)
	res, err := boolResult.Unpack(out)
	require.NoError(t, err)
	assert.Equal(t, true, res[0])

	got, err := c.BalanceOf(db, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), got.Int64())
	got, err = c.BalanceOf(db, to)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Int64())

	// the method id may also be part of the data
	raw := append(append([]byte{}, transferID...), data...)
	_, err = token.Call(context.Background(), db, multisig.Call{From: owner, Data: raw})
	require.NoError(t, err)
	got, err = c.BalanceOf(db, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.Int64())
}

func TestTokenBalanceOf(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	owner := custodytest.NewAddress()
	require.NoError(t, c.Issue(db, owner, big.NewInt(42)))

	data, err := balanceOfArgs.Pack(owner)
	require.NoError(t, err)
	out, err := NewToken(c).Call(context.Background(), db, multisig.Call{
		Selector: "balanceOf(address)",
		Data:     data,
	})
	require.NoError(t, err)
	res, err := uint256Result.Unpack(out)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res[0].(*big.Int).Int64())
}

func TestTokenCallErrors(t *testing.T) {
	owner := custodytest.NewAddress()
	data, err := TransferData(custodytest.NewAddress(), big.NewInt(20000))
	require.NoError(t, err)

	cases := map[string]struct {
		call    multisig.Call
		wantErr *errors.Error
	}{
		"not enough balance": {
			call:    multisig.Call{From: owner, Selector: transferSignature, Data: data},
			wantErr: errors.ErrInsufficientAmount,
		},
		"value is refused": {
			call:    multisig.Call{From: owner, Value: big.NewInt(1), Selector: transferSignature, Data: data},
			wantErr: errors.ErrInput,
		},
		"unknown method": {
			call:    multisig.Call{From: owner, Selector: "approve(address,uint256)", Data: data},
			wantErr: errors.ErrInput,
		},
		"truncated arguments": {
			call:    multisig.Call{From: owner, Selector: transferSignature, Data: data[:20]},
			wantErr: errors.ErrInput,
		},
		"no method id": {
			call:    multisig.Call{From: owner, Data: []byte{0x01}},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController()
			require.NoError(t, c.Issue(db, owner, big.NewInt(10000)))

			_, err := NewToken(c).Call(context.Background(), db, tc.call)
			require.Error(t, err)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)

			got, err := c.BalanceOf(db, owner)
			require.NoError(t, err)
			assert.Equal(t, int64(10000), got.Int64())
		})
	}
}
