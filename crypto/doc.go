/*
Package crypto provides the secp256k1 primitives used to authorize custody
actions: recovering the signing address from a signature, and signing on
behalf of a validator.

Validators never sign a raw digest. They sign the EIP-191 personal message
hash of it (see SignHash), which is what wallets produce for personal_sign.
Recovery accepts both the Ethereum (27/28) and the raw (0/1) form of the
recovery id.
*/
package crypto
