package app

import (
	"math/big"
	"sync"
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/multisig"
	"github.com/tendermint/tendermint/libs/log"
)

// App hosts one custody account over a store.
//
// All methods are safe for concurrent use. Transactions are applied one at
// a time, each against the state left by the previous one.
type App struct {
	mu sync.Mutex

	db      custody.CacheableKVStore
	handler custody.Handler
	init    custody.Initializer
	bank    cash.Controller
	targets *Targets
	logger  log.Logger
	metrics *metrics.Metrics

	// conf is nil until the account is initialized
	conf *Config
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger, by default nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithMetrics sets where metrics are emitted, by default the go-metrics
// global instance.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// New returns an app over given store. If the store holds an initialized
// account, it is loaded.
func New(db custody.CacheableKVStore, opts ...Option) (*App, error) {
	bank := cash.NewController()
	targets := NewTargets(bank)

	r := NewRouter()
	multisig.RegisterRoutes(r, bank, targets)

	a := &App{
		db:      db,
		handler: NewRecovery(r),
		init: ChainInitializers(
			configInitializer{},
			&multisig.Initializer{},
			cash.Initializer{},
		),
		bank:    bank,
		targets: targets,
		logger:  log.NewNopLogger(),
		metrics: metrics.Default(),
	}
	for _, o := range opts {
		o(a)
	}

	conf, ok, err := loadConfig(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load app config")
	}
	if ok {
		a.configure(conf)
	}
	return a, nil
}

func (a *App) configure(conf *Config) {
	a.conf = conf
	if conf.Token != (common.Address{}) {
		a.targets.Register(conf.Token, cash.NewToken(a.bank))
	}
}

// InitChain initializes the account from the genesis app state. It can be
// done only once per store.
func (a *App) InitChain(opts custody.Options) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conf != nil {
		return errors.Wrapf(errors.ErrState, "account %s already initialized", a.conf.Account.Hex())
	}

	cache := a.db.CacheWrap()
	if err := a.init.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	conf, _, err := loadConfig(cache)
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write genesis")
	}
	a.configure(conf)
	a.logger.Info("account initialized", "account", conf.Account.Hex())
	return nil
}

// Account returns the address of the hosted account.
func (a *App) Account() (common.Address, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conf == nil {
		return common.Address{}, errors.Wrap(errors.ErrState, "account not initialized")
	}
	return a.conf.Account, nil
}

// Check verifies the transaction against the current state without
// applying it.
func (a *App) Check(ctx custody.Context, tx custody.Tx) (*custody.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, err := a.context(ctx, "check", tx)
	if err != nil {
		return nil, err
	}
	cache := a.db.CacheWrap()
	defer cache.Discard()
	return a.handler.Check(ctx, cache, tx)
}

// Deliver applies the transaction. Either every change it makes is written,
// or none is.
func (a *App) Deliver(ctx custody.Context, tx custody.Tx) (*custody.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	path := custody.GetPath(tx)
	labels := []metrics.Label{{Name: "path", Value: path}}
	defer a.metrics.MeasureSinceWithLabels([]string{"tx", "deliver"}, start, labels)

	ctx, err := a.context(ctx, "deliver", tx)
	if err != nil {
		return nil, err
	}

	cache := a.db.CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err == nil {
		err = errors.Wrap(cache.Write(), "cannot write")
	} else {
		cache.Discard()
	}

	logger := custody.GetLogger(ctx)
	if err != nil {
		a.metrics.IncrCounterWithLabels([]string{"tx", "rejected"}, 1, labels)
		logger.Info("transaction rejected", "err", err)
		return nil, err
	}
	a.metrics.IncrCounterWithLabels([]string{"tx", "applied"}, 1, labels)
	logger.Info("transaction applied")
	return res, nil
}

func (a *App) context(ctx custody.Context, call string, tx custody.Tx) (custody.Context, error) {
	if a.conf == nil {
		return nil, errors.Wrap(errors.ErrState, "account not initialized")
	}
	if _, ok := custody.GetAccount(ctx); ok {
		return nil, errors.Wrap(errors.ErrState, "context already bound to an account")
	}
	ctx = custody.WithLogger(ctx, a.logger)
	ctx = custody.WithLogInfo(ctx, "call", call, "path", custody.GetPath(tx))
	return custody.WithAccount(ctx, a.conf.Account), nil
}

// AccountState is everything a client needs to know to build and sign the
// next transaction.
type AccountState struct {
	Account        common.Address   `json:"account"`
	Validators     []common.Address `json:"validators"`
	Threshold      uint64           `json:"threshold"`
	Required       int              `json:"required"`
	Nonce          uint64           `json:"nonce"`
	BindValueNonce bool             `json:"bind_value_nonce"`
	Balance        *big.Int         `json:"balance"`
	Token          *common.Address  `json:"token,omitempty"`
}

// State returns the current state of the account.
func (a *App) State() (*AccountState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conf == nil {
		return nil, errors.Wrap(errors.ErrState, "account not initialized")
	}
	st, err := multisig.LoadState(a.db)
	if err != nil {
		return nil, err
	}
	balance, err := a.bank.BalanceOf(a.db, a.conf.Account)
	if err != nil {
		return nil, err
	}
	res := &AccountState{
		Account:        a.conf.Account,
		Validators:     st.Validators,
		Threshold:      st.Threshold,
		Required:       multisig.RequiredCount(st.Validators.Len(), int(st.Threshold)),
		Nonce:          st.Nonce,
		BindValueNonce: st.BindValueNonce,
		Balance:        balance,
	}
	if a.conf.Token != (common.Address{}) {
		token := a.conf.Token
		res.Token = &token
	}
	return res, nil
}

// BalanceOf returns the cash balance of any address.
func (a *App) BalanceOf(owner common.Address) (*big.Int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bank.BalanceOf(a.db, owner)
}

// Digest returns what validators must sign to approve the action against
// the current state. An action bound to the nonce must carry the current
// one.
func (a *App) Digest(action multisig.Action) (common.Hash, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conf == nil {
		return common.Hash{}, errors.Wrap(errors.ErrState, "account not initialized")
	}
	if err := action.Validate(); err != nil {
		return common.Hash{}, err
	}
	st, err := multisig.LoadState(a.db)
	if err != nil {
		return common.Hash{}, err
	}
	if multisig.BindsNonce(action, st.Config) && action.GetNonce() != st.Nonce {
		return common.Hash{}, errors.Wrapf(errors.ErrInput, "nonce %d, current is %d", action.GetNonce(), st.Nonce)
	}
	return multisig.ActionDigest(a.conf.Account, action, st)
}
