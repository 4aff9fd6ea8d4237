package crypto

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/custody/errors"
)

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	// Sign returns a 65 byte signature over the given 32 byte hash, with
	// the recovery id in the Ethereum (27/28) form.
	Sign(hash common.Hash) ([]byte, error)
	// Address returns the identity recovered from signatures of this signer.
	Address() common.Address
}

// PrivateKey is a secp256k1 private key.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivKey returns a random new private key
func GenPrivKey() *PrivateKey {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: key}
}

// PrivKeyFromHex parses a hex encoded private key, with or without the 0x
// prefix.
func PrivKeyFromHex(raw string) (*PrivateKey, error) {
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &PrivateKey{key: key}, nil
}

// Hex returns the 0x prefixed hex encoding of the private key.
func (p *PrivateKey) Hex() string {
	return hexutil.Encode(ethcrypto.FromECDSA(p.key))
}

// Address returns the address derived from the public key.
func (p *PrivateKey) Address() common.Address {
	return ethcrypto.PubkeyToAddress(p.key.PublicKey)
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(hash common.Hash) ([]byte, error) {
	sig, err := ethcrypto.Sign(hash.Bytes(), p.key)
	if err != nil {
		return nil, errors.Wrap(ErrBadSignature, err.Error())
	}
	sig[recoveryIDIndex] += 27
	return sig, nil
}

// SignDigest signs the personal message hash of the digest, the same way
// personal_sign does in a wallet.
func SignDigest(signer Signer, digest common.Hash) ([]byte, error) {
	return signer.Sign(SignHash(digest))
}
