package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery wraps a handler to recover from panics in transactions,
// so we can log them as errors
type Recovery struct {
	next custody.Handler
}

var _ custody.Handler = Recovery{}

// NewRecovery creates a Recovery wrapper around the handler
func NewRecovery(next custody.Handler) Recovery {
	return Recovery{next: next}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (_ *custody.CheckResult, err error) {
	defer errors.Recover(&err)
	return r.next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (_ *custody.DeliverResult, err error) {
	defer errors.Recover(&err)
	return r.next.Deliver(ctx, store, tx)
}
