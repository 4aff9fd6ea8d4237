package crypto

import "github.com/iov-one/custody/errors"

// ErrBadSignature is returned for signatures that cannot be recovered to a
// public key: bad length, bad recovery id or out of range values.
var ErrBadSignature = errors.Register(1010, "bad signature")
