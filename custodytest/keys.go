// Package custodytest provides helpers for testing code that authorizes
// custody actions: validator keys and the signatures they produce.
package custodytest

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody/crypto"
)

// NewKey returns a fresh validator key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKey()
}

// NewKeys returns n fresh validator keys.
func NewKeys(n int) []*crypto.PrivateKey {
	keys := make([]*crypto.PrivateKey, n)
	for i := range keys {
		keys[i] = crypto.GenPrivKey()
	}
	return keys
}

// NewAddress returns the address of a fresh key, for identities that never
// sign anything.
func NewAddress() common.Address {
	return crypto.GenPrivKey().Address()
}

// Addresses returns the addresses of given keys, in the same order.
func Addresses(keys []*crypto.PrivateKey) []common.Address {
	addrs := make([]common.Address, len(keys))
	for i, k := range keys {
		addrs[i] = k.Address()
	}
	return addrs
}

// Sign returns one personal signature over the digest per key, in key order.
// It fails the test if any key cannot sign.
func Sign(t testing.TB, digest common.Hash, keys ...*crypto.PrivateKey) [][]byte {
	t.Helper()
	sigs := make([][]byte, 0, len(keys))
	for _, k := range keys {
		sig, err := crypto.SignDigest(k, digest)
		if err != nil {
			t.Fatalf("cannot sign: %s", err)
		}
		sigs = append(sigs, sig)
	}
	return sigs
}
