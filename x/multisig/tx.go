package multisig

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Tx is a single message together with the signatures approving it.
type Tx struct {
	Msg        Action
	Signatures [][]byte
}

var _ custody.SignedTx = (*Tx)(nil)

// GetMsg returns the message of this transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

// GetSignatures returns signatures in the order they were supplied.
func (tx *Tx) GetSignatures() [][]byte {
	return tx.Signatures
}

type txJSON struct {
	Path       string          `json:"path"`
	Msg        json.RawMessage `json:"msg"`
	Signatures []hexutil.Bytes `json:"signatures"`
}

// MarshalJSON encodes the transaction with its message path, so that it can
// be decoded without knowing the message type in advance.
func (tx *Tx) MarshalJSON() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	raw, err := json.Marshal(tx.Msg)
	if err != nil {
		return nil, err
	}
	sigs := make([]hexutil.Bytes, len(tx.Signatures))
	for i, s := range tx.Signatures {
		sigs[i] = s
	}
	return json.Marshal(txJSON{Path: tx.Msg.Path(), Msg: raw, Signatures: sigs})
}

// UnmarshalJSON decodes a transaction encoded by MarshalJSON.
func (tx *Tx) UnmarshalJSON(raw []byte) error {
	var t txJSON
	if err := json.Unmarshal(raw, &t); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	msg, err := NewMsg(t.Path)
	if err != nil {
		return err
	}
	if len(t.Msg) > 0 {
		if err := json.Unmarshal(t.Msg, msg); err != nil {
			return errors.Wrapf(errors.ErrInput, "%s: %s", t.Path, err)
		}
	}
	tx.Msg = msg
	tx.Signatures = make([][]byte, len(t.Signatures))
	for i, s := range t.Signatures {
		tx.Signatures[i] = s
	}
	return nil
}
