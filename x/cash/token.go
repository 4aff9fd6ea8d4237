package cash

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/multisig"
)

const (
	transferSignature  = "transfer(address,uint256)"
	balanceOfSignature = "balanceOf(address)"
)

var (
	transferID  = methodID(transferSignature)
	balanceOfID = methodID(balanceOfSignature)

	transferArgs  = arguments("address", "uint256")
	balanceOfArgs = arguments("address")
	boolResult    = arguments("bool")
	uint256Result = arguments("uint256")
)

func methodID(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

func arguments(types ...string) abi.Arguments {
	args := make(abi.Arguments, len(types))
	for i, name := range types {
		t, err := abi.NewType(name, "", nil)
		if err != nil {
			panic(err)
		}
		args[i] = abi.Argument{Type: t}
	}
	return args
}

// Token is a call target exposing the cash balances with an ERC20 like
// interface. Only transfer and balanceOf are supported. The caller of a
// transfer is always the owner of the moved balance.
type Token struct {
	ctrl Controller
}

var _ multisig.Caller = Token{}

// NewToken returns a token over the cash balances.
func NewToken(ctrl Controller) Token {
	return Token{ctrl: ctrl}
}

// Call executes the call. The method is taken from the selector, for
// example "transfer(address,uint256)", and Data holds the ABI encoded
// arguments. With an empty selector Data must start with the 4 byte method
// id. A token never accepts value.
func (t Token) Call(ctx custody.Context, db custody.KVStore, call multisig.Call) ([]byte, error) {
	if call.Value != nil && call.Value.Sign() != 0 {
		return nil, errors.Wrap(errors.ErrInput, "token does not accept value")
	}

	id, input, err := splitCall(call.Selector, call.Data)
	if err != nil {
		return nil, err
	}

	switch {
	case bytes.Equal(id, transferID):
		values, err := transferArgs.Unpack(input)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "%s: %s", transferSignature, err)
		}
		to := values[0].(common.Address)
		amount := values[1].(*big.Int)
		if err := t.ctrl.Transfer(db, call.From, to, amount); err != nil {
			return nil, err
		}
		custody.GetLogger(ctx).Debug("token transfer", "from", call.From.Hex(), "to", to.Hex(), "amount", amount.String())
		return boolResult.Pack(true)
	case bytes.Equal(id, balanceOfID):
		values, err := balanceOfArgs.Unpack(input)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "%s: %s", balanceOfSignature, err)
		}
		balance, err := t.ctrl.BalanceOf(db, values[0].(common.Address))
		if err != nil {
			return nil, err
		}
		return uint256Result.Pack(balance)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown method %x", id)
	}
}

func splitCall(selector string, data []byte) ([]byte, []byte, error) {
	if selector != "" {
		return methodID(selector), data, nil
	}
	if len(data) < 4 {
		return nil, nil, errors.Wrap(errors.ErrInput, "call data without method id")
	}
	return data[:4], data[4:], nil
}

// TransferData returns the call arguments of a token transfer, to be used
// as the Data of a call with the "transfer(address,uint256)" selector.
func TransferData(to common.Address, amount *big.Int) ([]byte, error) {
	return transferArgs.Pack(to, amount)
}
