package multisig

import (
	"fmt"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

var (
	ErrDuplicateValidator = errors.Register(1030, "duplicate validator")
	ErrUnknownValidator   = errors.Register(1031, "unknown validator")
	ErrWouldEmptyRegistry = errors.Register(1032, "registry cannot be empty")
	ErrInsufficientQuorum = errors.Register(1033, "insufficient quorum")
	ErrInvalidThreshold   = errors.Register(1034, "invalid threshold")
	ErrTargetCallFailed   = errors.Register(1035, "target call failed")

	// ErrBadSignature is returned when a signature cannot be recovered.
	ErrBadSignature = crypto.ErrBadSignature
)

// QuorumError is returned when a message did not collect enough approvals.
// It carries the state a client needs to retry: the current nonce and how
// many approvals are required. Its root error is ErrInsufficientQuorum.
type QuorumError struct {
	// Found is the number of distinct validators that approved.
	Found int
	// Required is the quorum enforced against the current state.
	Required int
	// Nonce is the current nonce of the account.
	Nonce uint64
	// Submitted is the nonce the message was signed for.
	Submitted uint64

	stale bool
}

func (e *QuorumError) Error() string {
	if e.stale {
		return fmt.Sprintf("stale nonce: submitted %d, current %d: %s",
			e.Submitted, e.Nonce, ErrInsufficientQuorum)
	}
	return fmt.Sprintf("%d of %d required approvals: %s", e.Found, e.Required, ErrInsufficientQuorum)
}

// Cause implements the causer interface.
func (e *QuorumError) Cause() error {
	return ErrInsufficientQuorum
}

// Stale returns true if the message was rejected because it was signed for
// a nonce other than the current one. No signatures were checked.
func (e *QuorumError) Stale() bool {
	return e.stale
}

// AsQuorumError returns the QuorumError carried by err, if any.
func AsQuorumError(err error) (*QuorumError, bool) {
	type causer interface {
		Cause() error
	}
	for err != nil {
		if qe, ok := err.(*QuorumError); ok {
			return qe, true
		}
		c, ok := err.(causer)
		if !ok {
			return nil, false
		}
		err = c.Cause()
	}
	return nil, false
}

// IsStaleNonce returns true if err rejects a message signed for a nonce
// that is not the current one.
func IsStaleNonce(err error) bool {
	qe, ok := AsQuorumError(err)
	return ok && qe.Stale()
}
