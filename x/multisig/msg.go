package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	PathAddValidatorMsg    = "multisig/add_validator"
	PathRemoveValidatorMsg = "multisig/remove_validator"
	PathUpdateThresholdMsg = "multisig/update_threshold"
	PathTransferMsg        = "multisig/transfer"
	PathCallMsg            = "multisig/call"
)

// Action is a message that needs the approval of a validator quorum.
type Action interface {
	custody.Msg

	// GetNonce returns the nonce the message was signed for. It is ignored
	// for messages that are not bound to the nonce.
	GetNonce() uint64

	governance() bool
	digestValues() (tag string, types []abi.Type, values []interface{})
}

var (
	_ Action = (*AddValidatorMsg)(nil)
	_ Action = (*RemoveValidatorMsg)(nil)
	_ Action = (*UpdateThresholdMsg)(nil)
	_ Action = (*TransferMsg)(nil)
	_ Action = (*CallMsg)(nil)
)

// AddValidatorMsg appends a validator to the registry.
type AddValidatorMsg struct {
	Validator common.Address `json:"validator"`
	Nonce     uint64         `json:"nonce"`
}

func (AddValidatorMsg) Path() string { return PathAddValidatorMsg }

func (m *AddValidatorMsg) Validate() error {
	return errors.AppendField(nil, "Validator", validateAddress(m.Validator))
}

func (m *AddValidatorMsg) GetNonce() uint64 { return m.Nonce }

func (AddValidatorMsg) governance() bool { return true }

func (m *AddValidatorMsg) digestValues() (string, []abi.Type, []interface{}) {
	return "custody/add_validator", []abi.Type{typeAddress}, []interface{}{m.Validator}
}

// RemoveValidatorMsg deletes a validator from the registry.
type RemoveValidatorMsg struct {
	Validator common.Address `json:"validator"`
	Nonce     uint64         `json:"nonce"`
}

func (RemoveValidatorMsg) Path() string { return PathRemoveValidatorMsg }

func (m *RemoveValidatorMsg) Validate() error {
	return errors.AppendField(nil, "Validator", validateAddress(m.Validator))
}

func (m *RemoveValidatorMsg) GetNonce() uint64 { return m.Nonce }

func (RemoveValidatorMsg) governance() bool { return true }

func (m *RemoveValidatorMsg) digestValues() (string, []abi.Type, []interface{}) {
	return "custody/remove_validator", []abi.Type{typeAddress}, []interface{}{m.Validator}
}

// UpdateThresholdMsg replaces the threshold percentage.
type UpdateThresholdMsg struct {
	Threshold uint64 `json:"threshold"`
	Nonce     uint64 `json:"nonce"`
}

func (UpdateThresholdMsg) Path() string { return PathUpdateThresholdMsg }

func (m *UpdateThresholdMsg) Validate() error {
	return errors.AppendField(nil, "Threshold", ValidateThreshold(m.Threshold))
}

func (m *UpdateThresholdMsg) GetNonce() uint64 { return m.Nonce }

func (UpdateThresholdMsg) governance() bool { return true }

func (m *UpdateThresholdMsg) digestValues() (string, []abi.Type, []interface{}) {
	return "custody/update_threshold", []abi.Type{typeUint256}, []interface{}{new(big.Int).SetUint64(m.Threshold)}
}

// TransferMsg moves Amount of the account balance to Recipient.
//
// Unless the account binds value messages to the nonce, the approving
// signatures do not expire. Anyone holding them can submit the same
// transfer again, as long as the balance covers it.
type TransferMsg struct {
	Recipient common.Address `json:"recipient"`
	Amount    *big.Int       `json:"amount"`
	Reference string         `json:"reference"`
	Nonce     uint64         `json:"nonce,omitempty"`
}

func (TransferMsg) Path() string { return PathTransferMsg }

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", validateAddress(m.Recipient))
	errs = errors.AppendField(errs, "Amount", validateAmount(m.Amount, false))
	return errs
}

func (m *TransferMsg) GetNonce() uint64 { return m.Nonce }

func (TransferMsg) governance() bool { return false }

func (m *TransferMsg) digestValues() (string, []abi.Type, []interface{}) {
	return "custody/transfer",
		[]abi.Type{typeAddress, typeUint256, typeString},
		[]interface{}{m.Recipient, m.Amount, m.Reference}
}

// CallMsg invokes Target on behalf of the account, sending Value of the
// account balance with it. Selector names the target function, for example
// "transfer(address,uint256)", and Data carries its encoded arguments. An
// empty selector passes Data through as is. Flag is opaque to the account.
//
// The same replay rules as for TransferMsg apply.
type CallMsg struct {
	Target   common.Address `json:"target"`
	Value    *big.Int       `json:"value"`
	Selector string         `json:"selector"`
	Data     hexutil.Bytes  `json:"data"`
	Flag     uint64         `json:"flag"`
	Nonce    uint64         `json:"nonce,omitempty"`
}

func (CallMsg) Path() string { return PathCallMsg }

func (m *CallMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Target", validateAddress(m.Target))
	errs = errors.AppendField(errs, "Value", validateAmount(m.Value, true))
	return errs
}

func (m *CallMsg) GetNonce() uint64 { return m.Nonce }

func (CallMsg) governance() bool { return false }

func (m *CallMsg) digestValues() (string, []abi.Type, []interface{}) {
	return "custody/call",
		[]abi.Type{typeAddress, typeUint256, typeString, typeBytes, typeUint256},
		[]interface{}{m.Target, m.Value, m.Selector, []byte(m.Data), new(big.Int).SetUint64(m.Flag)}
}

// NewMsg returns an empty message for given path.
func NewMsg(path string) (Action, error) {
	switch path {
	case PathAddValidatorMsg:
		return &AddValidatorMsg{}, nil
	case PathRemoveValidatorMsg:
		return &RemoveValidatorMsg{}, nil
	case PathUpdateThresholdMsg:
		return &UpdateThresholdMsg{}, nil
	case PathTransferMsg:
		return &TransferMsg{}, nil
	case PathCallMsg:
		return &CallMsg{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "unknown path %q", path)
	}
}

func validateAddress(a common.Address) error {
	if a == (common.Address{}) {
		return errors.ErrEmpty
	}
	return nil
}

// maxUint256 is the biggest amount the digest encoding can represent.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func validateAmount(a *big.Int, allowZero bool) error {
	switch {
	case a == nil:
		return errors.ErrEmpty
	case a.Sign() < 0:
		return errors.Wrap(errors.ErrAmount, "negative")
	case a.Sign() == 0 && !allowZero:
		return errors.Wrap(errors.ErrAmount, "zero")
	case a.Cmp(maxUint256) > 0:
		return errors.Wrap(errors.ErrOverflow, "more than 256 bits")
	}
	return nil
}
