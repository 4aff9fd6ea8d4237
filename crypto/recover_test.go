package crypto

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/custody/custodytest/assert"
)

func TestRecoverAddress(t *testing.T) {
	key := GenPrivKey()
	digest := ethcrypto.Keccak256Hash([]byte("transfer"))

	sig, err := SignDigest(key, digest)
	assert.Nil(t, err)

	raw := make([]byte, len(sig))
	copy(raw, sig)
	raw[recoveryIDIndex] -= 27

	badV := make([]byte, len(sig))
	copy(badV, sig)
	badV[recoveryIDIndex] = 5

	zero := make([]byte, SignatureLength)
	zero[recoveryIDIndex] = 27

	cases := map[string]struct {
		hash    common.Hash
		sig     []byte
		want    common.Address
		wantErr error
	}{
		"ethereum recovery id": {
			hash: SignHash(digest),
			sig:  sig,
			want: key.Address(),
		},
		"raw recovery id": {
			hash: SignHash(digest),
			sig:  raw,
			want: key.Address(),
		},
		"too short": {
			hash:    SignHash(digest),
			sig:     sig[:64],
			wantErr: ErrBadSignature,
		},
		"too long": {
			hash:    SignHash(digest),
			sig:     append(append([]byte{}, sig...), 0),
			wantErr: ErrBadSignature,
		},
		"unknown recovery id": {
			hash:    SignHash(digest),
			sig:     badV,
			wantErr: ErrBadSignature,
		},
		"zero values": {
			hash:    SignHash(digest),
			sig:     zero,
			wantErr: ErrBadSignature,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := RecoverAddress(tc.hash, tc.sig)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRecoverDoesNotModifyInput(t *testing.T) {
	key := GenPrivKey()
	digest := ethcrypto.Keccak256Hash([]byte("call"))
	sig, err := SignDigest(key, digest)
	assert.Nil(t, err)
	v := sig[recoveryIDIndex]

	_, err = RecoverAddress(SignHash(digest), sig)
	assert.Nil(t, err)
	assert.Equal(t, v, sig[recoveryIDIndex])
}

func TestRecoverOtherDigest(t *testing.T) {
	key := GenPrivKey()
	sig, err := SignDigest(key, ethcrypto.Keccak256Hash([]byte("nonce 1")))
	assert.Nil(t, err)

	// a valid signature over another digest recovers some other identity
	got, err := RecoverAddress(SignHash(ethcrypto.Keccak256Hash([]byte("nonce 2"))), sig)
	assert.Nil(t, err)
	if got == key.Address() {
		t.Fatal("signature must not recover the signer for another digest")
	}
}

func TestPrivKeyHex(t *testing.T) {
	// first hardhat development account
	key, err := PrivKeyFromHex("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	assert.Nil(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), key.Address())

	again, err := PrivKeyFromHex(key.Hex())
	assert.Nil(t, err)
	assert.Equal(t, key.Address(), again.Address())

	_, err = PrivKeyFromHex("0xnothex")
	if err == nil {
		t.Fatal("want error")
	}
}
