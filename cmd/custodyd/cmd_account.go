package main

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/multisig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInitCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init <genesis.json>",
		Short: "Initialize the account from a genesis file",
		Long: `Initialize the account database from a genesis file. Its app_state holds
the "app" section (account and token addresses), the "multisig" section
(validators, threshold, bind_value_nonce) and the "cash" section (initial
balances). An account can be initialized only once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			a, closer, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer closer()

			if err := a.InitChain(gen.AppState); err != nil {
				return err
			}
			st, err := a.State()
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
}

const flagBalanceOf = "balance-of"

type balanceOutput struct {
	Address common.Address `json:"address"`
	Balance *big.Int       `json:"balance"`
}

func newQueryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the account state",
		Long: `Print the validators, threshold, nonce and balance of the account, or,
with --balance-of, the cash balance of any address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := cmd.Flags().GetString(flagBalanceOf)
			if err != nil {
				return err
			}
			a, closer, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer closer()

			if owner == "" {
				st, err := a.State()
				if err != nil {
					return err
				}
				return printJSON(cmd, st)
			}
			if !common.IsHexAddress(owner) {
				return errors.Wrapf(errors.ErrInput, "invalid address %q", owner)
			}
			addr := common.HexToAddress(owner)
			balance, err := a.BalanceOf(addr)
			if err != nil {
				return err
			}
			return printJSON(cmd, balanceOutput{Address: addr, Balance: balance})
		},
	}
	cmd.Flags().String(flagBalanceOf, "", "print the balance of this address instead")
	return cmd
}

type digestOutput struct {
	Path   string      `json:"path"`
	Nonce  uint64      `json:"nonce"`
	Digest common.Hash `json:"digest"`
}

func newDigestCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "digest <tx.json|->",
		Short: "Print the digest validators must sign",
		Long: `Read a transaction, with or without signatures, and print the digest
that approves its message against the current account state. Governance
actions must carry the current nonce.

Example transaction:

  {"path": "multisig/transfer", "msg": {"recipient": "0x...", "amount": 10}}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := readTx(cmd, args[0])
			if err != nil {
				return err
			}
			a, closer, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer closer()

			digest, err := a.Digest(tx.Msg)
			if err != nil {
				return err
			}
			return printJSON(cmd, digestOutput{
				Path:   tx.Msg.Path(),
				Nonce:  tx.Msg.GetNonce(),
				Digest: digest,
			})
		},
	}
}

const flagCheck = "check"

type execOutput struct {
	Checked   bool          `json:"checked"`
	Log       string        `json:"log,omitempty"`
	Approvals int           `json:"approvals,omitempty"`
	Required  int           `json:"required,omitempty"`
	Events    []eventOutput `json:"events,omitempty"`
}

type eventOutput struct {
	Kind       string            `json:"kind"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func newExecCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <tx.json|->",
		Short: "Submit a signed transaction",
		Long: `Read a signed transaction and apply it to the account. With --check the
transaction is only verified and nothing is written.

A rejected quorum reports how many approvals were found and required and,
when the nonce was stale, which nonce to sign instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check, err := cmd.Flags().GetBool(flagCheck)
			if err != nil {
				return err
			}
			tx, err := readTx(cmd, args[0])
			if err != nil {
				return err
			}
			a, closer, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer closer()

			ctx := context.Background()
			if check {
				res, err := a.Check(ctx, tx)
				if err != nil {
					return err
				}
				return printJSON(cmd, execOutput{
					Checked:   true,
					Log:       res.Log,
					Approvals: res.Approvals,
					Required:  res.Required,
				})
			}
			res, err := a.Deliver(ctx, tx)
			if err != nil {
				return err
			}
			return printJSON(cmd, execOutput{Log: res.Log, Events: events(res.Events)})
		},
	}
	cmd.Flags().Bool(flagCheck, false, "verify the transaction without applying it")
	return cmd
}

func readTx(cmd *cobra.Command, name string) (*multisig.Tx, error) {
	raw, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}
	var tx multisig.Tx
	if err := tx.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}

func events(evs []custody.Event) []eventOutput {
	out := make([]eventOutput, 0, len(evs))
	for _, e := range evs {
		o := eventOutput{Kind: e.Kind}
		if len(e.Attributes) > 0 {
			o.Attributes = make(map[string]string, len(e.Attributes))
			for _, a := range e.Attributes {
				o.Attributes[a.Key] = a.Value
			}
		}
		out = append(out, o)
	}
	return out
}
