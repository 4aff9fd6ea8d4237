package multisig

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// VerifyQuorum checks that at least required distinct validators signed the
// digest. Every signature is over the personal message hash of the digest,
// see crypto.SignHash.
//
// All signatures are recovered before anything is decided, so the result
// does not depend on their order. A signature that cannot be recovered fails
// the whole check with ErrBadSignature. A signature of someone outside the
// registry is ignored, and a validator signing more than once is counted
// once. On success the approving validators are returned in the order their
// first signature was supplied.
func VerifyQuorum(digest common.Hash, sigs [][]byte, validators Registry, required int) ([]common.Address, error) {
	hash := crypto.SignHash(digest)

	var (
		bad       error
		approvals []common.Address
		seen      = make(map[common.Address]struct{}, len(sigs))
	)
	for i, sig := range sigs {
		signer, err := crypto.RecoverAddress(hash, sig)
		if err != nil {
			bad = errors.Append(bad, errors.Field(fmt.Sprintf("Signatures.%d", i), err, ""))
			continue
		}
		if !validators.Contains(signer) {
			continue
		}
		if _, ok := seen[signer]; ok {
			continue
		}
		seen[signer] = struct{}{}
		approvals = append(approvals, signer)
	}
	if bad != nil {
		return nil, bad
	}
	if len(approvals) < required {
		return nil, &QuorumError{Found: len(approvals), Required: required}
	}
	return approvals, nil
}
