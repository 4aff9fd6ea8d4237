package custody

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

type demoMsg struct{}

func (demoMsg) Path() string    { return "demo/msg" }
func (demoMsg) Validate() error { return nil }

type demoTx struct {
	msg Msg
	err error
}

func (tx demoTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestGetPath(t *testing.T) {
	cases := map[string]struct {
		tx   Tx
		want string
	}{
		"message":       {tx: demoTx{msg: demoMsg{}}, want: "demo/msg"},
		"no message":    {tx: demoTx{}, want: "(missing)"},
		"message error": {tx: demoTx{msg: demoMsg{}, err: errors.ErrInput}, want: "(missing)"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, GetPath(tc.tx))
		})
	}
}
