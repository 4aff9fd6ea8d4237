package custody

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the custody module

const (
	contextKeyLogger contextKey = iota
	contextKeyAccount
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithAccount binds the identity of the custody account that executes the
// action. It panics if an account was already set on this context.
func WithAccount(ctx Context, account common.Address) Context {
	if _, ok := GetAccount(ctx); ok {
		panic("account already set")
	}
	return context.WithValue(ctx, contextKeyAccount, account)
}

// GetAccount returns the address of the custody account executing the
// action, if one was set.
func GetAccount(ctx Context) (common.Address, bool) {
	val, ok := ctx.Value(contextKeyAccount).(common.Address)
	return val, ok
}
