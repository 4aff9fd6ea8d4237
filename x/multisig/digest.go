package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/custody/errors"
)

var (
	typeString  = mustType("string")
	typeAddress = mustType("address")
	typeUint256 = mustType("uint256")
	typeBytes   = mustType("bytes")
)

func mustType(name string) abi.Type {
	t, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Digest returns the hash validators sign to approve the action on behalf
// of the account. It is the keccak256 hash of the non-packed ABI encoding of
//
//    (tag, account, action values..., nonce)
//
// where tag names the kind of the action and the nonce is present only when
// bindNonce is set. Dynamic values are length prefixed by the encoding, so
// two different actions never share a digest.
func Digest(account common.Address, action Action, nonce uint64, bindNonce bool) (common.Hash, error) {
	tag, types, values := action.digestValues()

	args := abi.Arguments{{Type: typeString}, {Type: typeAddress}}
	for _, t := range types {
		args = append(args, abi.Argument{Type: t})
	}
	all := append([]interface{}{tag, account}, values...)

	if bindNonce {
		args = append(args, abi.Argument{Type: typeUint256})
		all = append(all, new(big.Int).SetUint64(nonce))
	}

	raw, err := args.Pack(all...)
	if err != nil {
		return common.Hash{}, errors.Wrapf(errors.ErrMsg, "cannot encode %s: %s", tag, err)
	}
	return crypto.Keccak256Hash(raw), nil
}

// BindsNonce returns true if approvals of the action are tied to the nonce
// under given configuration.
func BindsNonce(action Action, c Config) bool {
	return action.governance() || c.BindValueNonce
}

// ActionDigest returns the digest that approves the action against the
// current state of the account.
func ActionDigest(account common.Address, action Action, st *State) (common.Hash, error) {
	return Digest(account, action, st.Nonce, BindsNonce(action, st.Config))
}
