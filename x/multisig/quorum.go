package multisig

import "github.com/iov-one/custody/errors"

const (
	// DefaultThreshold is used when an account is created without one.
	DefaultThreshold = 80
	// MaxThreshold is the percentage of all validators.
	MaxThreshold = 100
)

// RequiredCount returns how many distinct validators must approve a message
// when the registry holds validatorCount entries and the threshold is
// thresholdPercent. The result is rounded up and always within
// [1, validatorCount], so even a zero threshold demands one approval.
func RequiredCount(validatorCount, thresholdPercent int) int {
	if validatorCount <= 0 {
		return 1
	}
	switch {
	case thresholdPercent < 0:
		thresholdPercent = 0
	case thresholdPercent > MaxThreshold:
		thresholdPercent = MaxThreshold
	}
	n := (validatorCount*thresholdPercent + MaxThreshold - 1) / MaxThreshold
	switch {
	case n < 1:
		return 1
	case n > validatorCount:
		return validatorCount
	default:
		return n
	}
}

// ValidateThreshold returns an error if the percentage is out of [0, 100].
func ValidateThreshold(percent uint64) error {
	if percent > MaxThreshold {
		return errors.Wrapf(ErrInvalidThreshold, "%d is greater than %d", percent, MaxThreshold)
	}
	return nil
}
