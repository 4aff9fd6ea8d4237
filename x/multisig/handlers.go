package multisig

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Bank is the balance store holding the assets of the account.
type Bank interface {
	BalanceOf(db custody.ReadOnlyKVStore, owner common.Address) (*big.Int, error)
	Transfer(db custody.KVStore, from, to common.Address, amount *big.Int) error
}

// Call is an approved invocation forwarded to a target.
type Call struct {
	From     common.Address
	Target   common.Address
	Value    *big.Int
	Selector string
	Data     []byte
	Flag     uint64
}

// Caller executes forwarded calls. A returned error fails the whole message.
type Caller interface {
	Call(ctx custody.Context, db custody.KVStore, call Call) ([]byte, error)
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, bank Bank, caller Caller) {
	gov := NewGovernanceHandler()
	r.Handle(PathAddValidatorMsg, gov)
	r.Handle(PathRemoveValidatorMsg, gov)
	r.Handle(PathUpdateThresholdMsg, gov)
	r.Handle(PathTransferMsg, NewTransferHandler(bank))
	r.Handle(PathCallMsg, NewCallHandler(caller))
}

// approval is the outcome of a successful quorum check.
type approval struct {
	account   common.Address
	state     *State
	approvals []common.Address
	required  int
	bound     bool
}

func (a *approval) checkResult() *custody.CheckResult {
	return &custody.CheckResult{
		Log:       fmt.Sprintf("%d of %d required approvals", len(a.approvals), a.required),
		Approvals: len(a.approvals),
		Required:  a.required,
	}
}

// advance moves the nonce forward if the message was bound to it.
func (a *approval) advance(db custody.KVStore) error {
	if !a.bound {
		return nil
	}
	_, err := NewNonceLedger().Advance(db)
	return err
}

// authorize is the only quorum check of this package. Every handler calls
// it against the current state before touching anything.
func authorize(ctx custody.Context, db custody.KVStore, tx custody.Tx, action Action) (*approval, error) {
	account, ok := custody.GetAccount(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "no account in context")
	}
	if err := action.Validate(); err != nil {
		return nil, err
	}

	st, err := LoadState(db)
	if err != nil {
		return nil, err
	}
	required := RequiredCount(st.Validators.Len(), int(st.Threshold))
	bound := BindsNonce(action, st.Config)

	if bound && action.GetNonce() != st.Nonce {
		return nil, &QuorumError{
			Required:  required,
			Nonce:     st.Nonce,
			Submitted: action.GetNonce(),
			stale:     true,
		}
	}

	signed, ok := tx.(custody.SignedTx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction carries no signatures")
	}

	digest, err := ActionDigest(account, action, st)
	if err != nil {
		return nil, err
	}
	approvals, err := VerifyQuorum(digest, signed.GetSignatures(), st.Validators, required)
	if qe, ok := AsQuorumError(err); ok {
		qe.Nonce = st.Nonce
		qe.Submitted = action.GetNonce()
	}
	if err != nil {
		return nil, err
	}

	return &approval{
		account:   account,
		state:     st,
		approvals: approvals,
		required:  required,
		bound:     bound,
	}, nil
}

func loadAction(tx custody.Tx) (Action, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	action, ok := msg.(Action)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	return action, nil
}

// GovernanceHandler applies changes to the registry and the threshold.
type GovernanceHandler struct{}

var _ custody.Handler = GovernanceHandler{}

// NewGovernanceHandler returns a handler for AddValidatorMsg,
// RemoveValidatorMsg and UpdateThresholdMsg.
func NewGovernanceHandler() GovernanceHandler {
	return GovernanceHandler{}
}

func (h GovernanceHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	action, a, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, _, _, err := h.mutate(a.state, action); err != nil {
		return nil, err
	}
	return a.checkResult(), nil
}

func (h GovernanceHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	action, a, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	validators, conf, event, err := h.mutate(a.state, action)
	if err != nil {
		return nil, err
	}
	if validators != nil {
		if err := saveValidators(db, validators); err != nil {
			return nil, errors.Wrap(err, "cannot save validators")
		}
	}
	if conf != nil {
		if err := saveConfig(db, conf); err != nil {
			return nil, errors.Wrap(err, "cannot save config")
		}
	}
	if err := a.advance(db); err != nil {
		return nil, errors.Wrap(err, "cannot advance nonce")
	}
	event.Attributes = append(event.Attributes, custody.Attribute{Key: "nonce", Value: fmt.Sprint(a.state.Nonce)})
	return &custody.DeliverResult{Events: []custody.Event{event}}, nil
}

// mutate computes the state change requested by a governance message
// without writing it. Only the changed part is returned.
func (GovernanceHandler) mutate(st *State, action Action) (Registry, *Config, custody.Event, error) {
	switch msg := action.(type) {
	case *AddValidatorMsg:
		validators := append(Registry(nil), st.Validators...)
		if err := validators.Add(msg.Validator); err != nil {
			return nil, nil, custody.Event{}, err
		}
		return validators, nil, custody.NewEvent("validator_added", "validator", msg.Validator.Hex()), nil
	case *RemoveValidatorMsg:
		validators := append(Registry(nil), st.Validators...)
		if err := validators.Remove(msg.Validator); err != nil {
			return nil, nil, custody.Event{}, err
		}
		return validators, nil, custody.NewEvent("validator_removed", "validator", msg.Validator.Hex()), nil
	case *UpdateThresholdMsg:
		conf := st.Config
		conf.Threshold = msg.Threshold
		if err := conf.Validate(); err != nil {
			return nil, nil, custody.Event{}, err
		}
		return nil, &conf, custody.NewEvent("threshold_updated", "threshold", fmt.Sprint(msg.Threshold)), nil
	default:
		return nil, nil, custody.Event{}, errors.WithType(errors.ErrMsg, action)
	}
}

func (h GovernanceHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (Action, *approval, error) {
	action, err := loadAction(tx)
	if err != nil {
		return nil, nil, err
	}
	if !action.governance() {
		return nil, nil, errors.WithType(errors.ErrMsg, action)
	}
	a, err := authorize(ctx, db, tx, action)
	if err != nil {
		return nil, nil, err
	}
	return action, a, nil
}

// TransferHandler moves balance out of the account.
type TransferHandler struct {
	bank Bank
}

var _ custody.Handler = TransferHandler{}

// NewTransferHandler returns a handler for TransferMsg.
func NewTransferHandler(bank Bank) TransferHandler {
	return TransferHandler{bank: bank}
}

func (h TransferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	_, a, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return a.checkResult(), nil
}

func (h TransferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, a, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bank.Transfer(db, a.account, msg.Recipient, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot transfer")
	}
	if err := a.advance(db); err != nil {
		return nil, errors.Wrap(err, "cannot advance nonce")
	}
	event := custody.NewEvent("transfer",
		"recipient", msg.Recipient.Hex(),
		"amount", msg.Amount.String(),
		"reference", msg.Reference,
	)
	return &custody.DeliverResult{Events: []custody.Event{event}}, nil
}

func (h TransferHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*TransferMsg, *approval, error) {
	action, err := loadAction(tx)
	if err != nil {
		return nil, nil, err
	}
	msg, ok := action.(*TransferMsg)
	if !ok {
		return nil, nil, errors.WithType(errors.ErrMsg, action)
	}
	a, err := authorize(ctx, db, tx, msg)
	if err != nil {
		return nil, nil, err
	}
	return msg, a, nil
}

// CallHandler forwards calls to arbitrary targets.
type CallHandler struct {
	caller Caller
}

var _ custody.Handler = CallHandler{}

// NewCallHandler returns a handler for CallMsg.
func NewCallHandler(caller Caller) CallHandler {
	return CallHandler{caller: caller}
}

func (h CallHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	_, a, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return a.checkResult(), nil
}

func (h CallHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, a, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	call := Call{
		From:     a.account,
		Target:   msg.Target,
		Value:    msg.Value,
		Selector: msg.Selector,
		Data:     msg.Data,
		Flag:     msg.Flag,
	}
	out, err := h.caller.Call(ctx, db, call)
	if err != nil {
		return nil, errors.Append(errors.Wrapf(ErrTargetCallFailed, "target %s", msg.Target.Hex()), err)
	}
	if err := a.advance(db); err != nil {
		return nil, errors.Wrap(err, "cannot advance nonce")
	}
	event := custody.NewEvent("call",
		"target", msg.Target.Hex(),
		"value", msg.Value.String(),
		"selector", msg.Selector,
	)
	return &custody.DeliverResult{Log: fmt.Sprintf("%x", out), Events: []custody.Event{event}}, nil
}

func (h CallHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CallMsg, *approval, error) {
	action, err := loadAction(tx)
	if err != nil {
		return nil, nil, err
	}
	msg, ok := action.(*CallMsg)
	if !ok {
		return nil, nil, errors.WithType(errors.ErrMsg, action)
	}
	a, err := authorize(ctx, db, tx, msg)
	if err != nil {
		return nil, nil, err
	}
	return msg, a, nil
}
