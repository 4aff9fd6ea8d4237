package multisig

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody/errors"
)

// Registry is the ordered set of validators of an account.
type Registry []common.Address

// NewRegistry returns a registry of given validators, in given order.
func NewRegistry(validators ...common.Address) (Registry, error) {
	r := make(Registry, len(validators))
	copy(r, validators)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate returns an error if the registry is empty, contains a zero
// address or contains any validator more than once.
func (r Registry) Validate() error {
	if len(r) == 0 {
		return errors.Wrap(ErrWouldEmptyRegistry, "no validators")
	}
	seen := make(map[common.Address]struct{}, len(r))
	for i, v := range r {
		if v == (common.Address{}) {
			return errors.Wrapf(errors.ErrEmpty, "validator %d", i)
		}
		if _, ok := seen[v]; ok {
			return errors.Wrapf(ErrDuplicateValidator, "validator %s", v.Hex())
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Len returns the number of validators.
func (r Registry) Len() int {
	return len(r)
}

// At returns the validator at given position.
func (r Registry) At(i int) (common.Address, error) {
	if i < 0 || i >= len(r) {
		return common.Address{}, errors.Wrapf(errors.ErrNotFound, "validator index %d of %d", i, len(r))
	}
	return r[i], nil
}

// Contains returns true if given address is a validator.
func (r Registry) Contains(a common.Address) bool {
	return r.index(a) >= 0
}

func (r Registry) index(a common.Address) int {
	for i, v := range r {
		if v == a {
			return i
		}
	}
	return -1
}

// Add appends a validator to the end of the registry.
func (r *Registry) Add(a common.Address) error {
	if a == (common.Address{}) {
		return errors.Wrap(errors.ErrEmpty, "validator")
	}
	if r.Contains(a) {
		return errors.Wrapf(ErrDuplicateValidator, "validator %s", a.Hex())
	}
	*r = append(*r, a)
	return nil
}

// Remove deletes a validator. Validators after it keep their relative
// order. The last validator cannot be removed.
func (r *Registry) Remove(a common.Address) error {
	i := r.index(a)
	if i < 0 {
		return errors.Wrapf(ErrUnknownValidator, "validator %s", a.Hex())
	}
	if len(*r) == 1 {
		return errors.Wrapf(ErrWouldEmptyRegistry, "validator %s is the last one", a.Hex())
	}
	compacted := make(Registry, 0, len(*r)-1)
	compacted = append(compacted, (*r)[:i]...)
	compacted = append(compacted, (*r)[i+1:]...)
	*r = compacted
	return nil
}
