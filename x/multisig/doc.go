/*
Package multisig implements a custody account controlled by a registry of
validators. Every action taken on behalf of the account must be approved by
a quorum of distinct validators, each signing the digest of that exact
action.

The account state is made of the ordered validator registry, the threshold
percentage and a nonce. RequiredCount derives the quorum from the current
registry size and threshold, rounding up, so an 80% threshold over four
validators requires all four of them.

Governance messages (AddValidatorMsg, RemoveValidatorMsg and
UpdateThresholdMsg) carry the nonce they were signed for. A message with any
other nonce is rejected before signatures are checked, and a successfully
applied governance message advances the nonce, so every governance approval
can be used only once.

Value messages (TransferMsg and CallMsg) are not bound to the nonce unless
the account was created with bind_value_nonce set in its genesis. Without
it, a set of signatures approving a transfer stays valid and can be
submitted again to repeat that transfer. With it, the digest includes the
nonce and every applied value message advances it, the same way governance
messages do.

CallMsg forwards value and an opaque payload to an arbitrary target. It is a
capability grant over everything the account owns and is gated by exactly
the same quorum check as a transfer.

The package does no locking. The hosting environment must apply one message
at a time and discard all writes of a rejected message.
*/
package multisig
