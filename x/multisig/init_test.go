package multisig

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	a, b := custodytest.NewAddress(), custodytest.NewAddress()

	cases := map[string]struct {
		genesis       string
		wantErr       *errors.Error
		wantThreshold uint64
		wantBind      bool
	}{
		"default threshold": {
			genesis:       `{"validators": ["` + a.Hex() + `", "` + b.Hex() + `"]}`,
			wantThreshold: 80,
		},
		"explicit threshold": {
			genesis:       `{"validators": ["` + a.Hex() + `", "` + b.Hex() + `"], "threshold": 50, "bind_value_nonce": true}`,
			wantThreshold: 50,
			wantBind:      true,
		},
		"zero threshold is kept": {
			genesis:       `{"validators": ["` + a.Hex() + `"], "threshold": 0}`,
			wantThreshold: 0,
		},
		"threshold out of range": {
			genesis: `{"validators": ["` + a.Hex() + `"], "threshold": 101}`,
			wantErr: ErrInvalidThreshold,
		},
		"no validators": {
			genesis: `{"threshold": 80}`,
			wantErr: ErrWouldEmptyRegistry,
		},
		"duplicated validator": {
			genesis: `{"validators": ["` + a.Hex() + `", "` + a.Hex() + `"]}`,
			wantErr: ErrDuplicateValidator,
		},
		"malformed": {
			genesis: `{"validators": "nope"}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			opts := custody.Options{"multisig": json.RawMessage(tc.genesis)}
			var initializer Initializer
			err := initializer.FromGenesis(opts, db)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			require.NoError(t, err)

			st, err := LoadState(db)
			require.NoError(t, err)
			assert.Equal(t, tc.wantThreshold, st.Threshold)
			assert.Equal(t, tc.wantBind, st.BindValueNonce)
			assert.Equal(t, uint64(0), st.Nonce)
			assert.Equal(t, a, st.Validators[0])
		})
	}
}

func TestGenesisOnlyOnce(t *testing.T) {
	db := store.MemStore()
	opts := custody.Options{"multisig": json.RawMessage(`{"validators": ["` + custodytest.NewAddress().Hex() + `"]}`)}
	var initializer Initializer
	require.NoError(t, initializer.FromGenesis(opts, db))
	assert.IsErr(t, errors.ErrState, initializer.FromGenesis(opts, db))
}

func TestStateNotInitialized(t *testing.T) {
	db := store.MemStore()
	_, err := LoadState(db)
	assert.IsErr(t, errors.ErrState, err)
	_, err = ValidatorCount(db)
	assert.IsErr(t, errors.ErrState, err)
	_, err = Threshold(db)
	assert.IsErr(t, errors.ErrState, err)
}
