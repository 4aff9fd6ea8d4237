package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const flagKey = "key"

type keyOutput struct {
	Address    common.Address `json:"address"`
	PrivateKey string         `json:"private_key"`
}

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new validator key",
		Long: `Generate a new secp256k1 key and print it together with its address.

The private key is printed in clear. Store it somewhere safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := crypto.GenPrivKey()
			return printJSON(cmd, keyOutput{Address: key.Address(), PrivateKey: key.Hex()})
		},
	}
}

func newSignCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <digest>",
		Short: "Sign an action digest with a validator key",
		Long: `Sign a digest returned by the "digest" command and print the signature.

The key is taken from --key or the CUSTODY_KEY environment variable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := v.GetString(flagKey)
			if raw == "" {
				return errors.Wrap(errors.ErrEmpty, "key")
			}
			key, err := crypto.PrivKeyFromHex(raw)
			if err != nil {
				return err
			}
			digest, err := parseDigest(args[0])
			if err != nil {
				return err
			}
			sig, err := crypto.SignDigest(key, digest)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(sig))
			return err
		},
	}
	cmd.Flags().String(flagKey, "", "hex encoded private key")
	_ = v.BindPFlag(flagKey, cmd.Flags().Lookup(flagKey))
	return cmd
}

func parseDigest(s string) (common.Hash, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, errors.Wrapf(errors.ErrInput, "digest: %s", err)
	}
	if len(raw) != common.HashLength {
		return common.Hash{}, errors.Wrapf(errors.ErrInput, "digest must be %d bytes", common.HashLength)
	}
	return common.BytesToHash(raw), nil
}
