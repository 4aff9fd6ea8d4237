package crypto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/custody/errors"
)

const (
	// SignatureLength is the expected length of an ECDSA signature (r||s||v)
	SignatureLength = 65
	// recoveryIDIndex is the byte position of the recovery ID (v) in the signature
	recoveryIDIndex = 64
)

// SignHash returns the hash that is actually signed for the given digest.
// It is the EIP-191 personal message hash of the 32 digest bytes:
//
//   keccak256("\x19Ethereum Signed Message:\n32" || digest)
func SignHash(digest common.Hash) common.Hash {
	return common.BytesToHash(accounts.TextHash(digest.Bytes()))
}

// RecoverAddress returns the address of the key that produced sig over hash.
// It does not know anything about validators, it only tells who signed.
func RecoverAddress(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, errors.Wrapf(ErrBadSignature, "invalid length: expected %d, got %d", SignatureLength, len(sig))
	}

	normalized, err := normalizeSignature(sig)
	if err != nil {
		return common.Address{}, err
	}

	r := new(big.Int).SetBytes(normalized[:32])
	s := new(big.Int).SetBytes(normalized[32:64])
	if !ethcrypto.ValidateSignatureValues(normalized[recoveryIDIndex], r, s, true) {
		return common.Address{}, errors.Wrap(ErrBadSignature, "signature values out of range")
	}

	pub, err := ethcrypto.SigToPub(hash.Bytes(), normalized)
	if err != nil {
		return common.Address{}, errors.Wrapf(ErrBadSignature, "cannot recover public key: %s", err)
	}
	if pub == nil {
		return common.Address{}, errors.Wrap(ErrBadSignature, "recovered public key is nil")
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// normalizeSignature converts the ECDSA recovery ID (v) from Ethereum format
// (27/28) to raw format (0/1). The input is never modified.
func normalizeSignature(sig []byte) ([]byte, error) {
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)

	switch v := normalized[recoveryIDIndex]; v {
	case 0, 1:
	case 27, 28:
		normalized[recoveryIDIndex] = v - 27
	default:
		return nil, errors.Wrapf(ErrBadSignature, "invalid recovery id %d", v)
	}
	return normalized, nil
}
