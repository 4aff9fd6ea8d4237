// custodyd hosts a single custody account on a local database. Validators
// use it to learn what to sign and to submit signed actions.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"

	envPrefix  = "CUSTODY"
	configName = "config"
	dbName     = "custody"
	dataDir    = "data"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

// newRootCmd returns the custodyd command tree. Each call builds a fresh
// tree with its own configuration, so that tests can run commands in
// isolation.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetDefault(flagHome, defaultHome())
	v.SetDefault(flagLogLevel, "info")

	cmd := &cobra.Command{
		Use:   "custodyd",
		Short: "Threshold signature custody account",
		Long: `custodyd keeps the state of one custody account in a local database.

Every action on the account must be approved by a quorum of its validators.
Use "digest" to learn what to sign, "sign" to produce a signature with a
validator key and "exec" to submit the signed transaction.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
		Version: custody.Version(),
	}

	cmd.PersistentFlags().String(flagHome, defaultHome(), "directory holding the database and config.yaml")
	cmd.PersistentFlags().String(flagLogLevel, "info", `log level ("debug", "info", "error", "none")`)
	_ = v.BindPFlag(flagHome, cmd.PersistentFlags().Lookup(flagHome))
	_ = v.BindPFlag(flagLogLevel, cmd.PersistentFlags().Lookup(flagLogLevel))

	cmd.AddCommand(
		newKeygenCmd(),
		newSignCmd(v),
		newInitCmd(v),
		newQueryCmd(v),
		newDigestCmd(v),
		newExecCmd(v),
		newVersionCmd(),
	)
	return cmd
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".custody"
	}
	return filepath.Join(home, ".custody")
}

// initConfig reads config.yaml from the home directory, if present, and
// environment variables prefixed with CUSTODY_. Flags given on the command
// line take precedence over both.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString(flagHome))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrapf(errors.ErrInput, "config: %s", err)
		}
	}
	return nil
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "custody")
	if level == "none" {
		return log.NewNopLogger(), nil
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// openApp opens the account database in the home directory. The returned
// function must be called to release the database.
func openApp(cmd *cobra.Command, v *viper.Viper) (*app.App, func(), error) {
	logger, err := newLogger(cmd.ErrOrStderr(), v.GetString(flagLogLevel))
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Join(v.GetString(flagHome), dataDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInput, "home: %s", err)
	}
	db, err := dbm.NewDB(dbName, dbm.GoLevelDBBackend, dir)
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", dir, err)
	}
	kv := store.NewTMStore(db)
	closer := func() {
		if err := kv.Close(); err != nil {
			logger.Error("cannot close database", "err", err)
		}
	}

	a, err := app.New(kv, app.WithLogger(logger))
	if err != nil {
		closer()
		return nil, nil, err
	}
	return a, closer, nil
}

// readInput returns the content of the named file, or of the standard input
// when the name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if name == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read %s: %s", name, err)
	}
	return raw, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), custody.Version())
		},
	}
}
