package custody

import (
	"context"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// account - uninitialized
	_, ok := GetAccount(ctx)
	assert.False(t, ok)

	account := common.HexToAddress("0x6283375C9f25903d31BC1C8a5f9a2C4d83a69F2C")
	ctx = WithAccount(ctx, account)
	got, ok := GetAccount(ctx)
	assert.True(t, ok)
	assert.Equal(t, account, got)
	// no reset
	assert.Panics(t, func() { WithAccount(ctx, common.Address{}) })

	// changing the info, should modify the logger, but not the account
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	got, _ = GetAccount(ctx2)
	assert.Equal(t, account, got)
}
