package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	path := write("genesis.json", `{
		"chain_id": "ignored",
		"app_state": {
			"app": {"account": "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"},
			"multisig": {"validators": []}
		}
	}`)
	gen, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Len(t, gen.AppState, 2)

	var conf Config
	require.NoError(t, gen.AppState.ReadOptions("app", &conf))
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), conf.Account)

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))

	_, err = LoadGenesis(write("broken.json", `{"app_state": [`))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestConfigValidate(t *testing.T) {
	account := common.HexToAddress("0x01")
	cases := map[string]struct {
		conf    Config
		wantErr *errors.Error
	}{
		"account only":         {conf: Config{Account: account}},
		"account and token":    {conf: Config{Account: account, Token: common.HexToAddress("0x02")}},
		"missing account":      {conf: Config{Token: common.HexToAddress("0x02")}, wantErr: errors.ErrEmpty},
		"token is the account": {conf: Config{Account: account, Token: account}, wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestConfigInitializer(t *testing.T) {
	db := store.MemStore()
	account := common.HexToAddress("0x01")

	_, ok, err := loadConfig(db)
	require.NoError(t, err)
	assert.False(t, ok)

	opts := custody.Options{"app": []byte(`{"account": "0x0000000000000000000000000000000000000001"}`)}
	require.NoError(t, configInitializer{}.FromGenesis(opts, db))

	conf, ok, err := loadConfig(db)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, account, conf.Account)
	assert.Equal(t, common.Address{}, conf.Token)

	err = configInitializer{}.FromGenesis(custody.Options{"app": []byte(`{"account": 1}`)}, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err))

	err = configInitializer{}.FromGenesis(custody.Options{}, store.MemStore())
	assert.True(t, errors.ErrEmpty.Is(err))
}

type recordingInitializer struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingInitializer) FromGenesis(custody.Options, custody.KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	chain := ChainInitializers(
		recordingInitializer{name: "a", calls: &calls},
		recordingInitializer{name: "b", calls: &calls, err: errors.ErrInput},
		recordingInitializer{name: "c", calls: &calls},
	)
	err := chain.FromGenesis(custody.Options{}, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, []string{"a", "b"}, calls)
}
