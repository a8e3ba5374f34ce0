package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/covenant"
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/utils/serialization"
	"github.com/spacechains/covchain/infrastructure/config"
	"github.com/spacechains/covchain/infrastructure/ledgerrpc"
	"github.com/spacechains/covchain/infrastructure/logger"
	"github.com/spacechains/covchain/infrastructure/signer"
	"github.com/spacechains/covchain/version"
)

const usage = "Usage: covchain [options] <covenant_txid> <spacechain_hash> <cpfp_rawtransaction>"

func main() {
	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			fmt.Println(usage)
			os.Exit(0)
		}
		printErrorAndExit(err, "Failed to load configuration")
	}

	if cfg.ShowVersion {
		fmt.Println("covchain version", version.Version())
		os.Exit(0)
	}

	err = initLog(cfg)
	if err != nil {
		printErrorAndExit(err, "Failed to initialize logging")
	}

	err = run(cfg, args, os.Stdout)
	logger.Close()
	if err != nil {
		printErrorAndExit(err, "Failed to generate transactions")
	}
}

func initLog(cfg *config.Config) error {
	err := logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return err
	}
	return logger.InitLog(cfg.LogFile, logger.LevelTrace)
}

// run writes the next chain transaction and the merged fee-bumping
// transaction to out.
func run(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) != 3 {
		return errors.Errorf("expected 3 arguments, got %d\n%s", len(args), usage)
	}
	prevTxIDHex, auxHashHex, rawTxHex := args[0], args[1], args[2]

	prevTxID, err := externalapi.NewDomainHashFromString(prevTxIDHex)
	if err != nil {
		return errors.Wrap(err, "invalid covenant txid")
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	log.Infof("Covenant address on %s: %s", cfg.NetParams().Name,
		engine.CovenantAddress(cfg.ScriptHashAddressVersion()))

	var client *ledgerrpc.Client
	if cfg.CrossCheck {
		client, err = newLedgerClient(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		err = serialization.CrossCheck(client, rawTxHex)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Generating...")
	chainTxHex, mergedTxHex, err := engine.NextChainTransactions(*prevTxID, auxHashHex, rawTxHex)
	if err != nil {
		return err
	}

	if client != nil {
		for _, txHex := range []string{chainTxHex, mergedTxHex} {
			err = serialization.CrossCheck(client, txHex)
			if err != nil {
				return err
			}
		}
		log.Infof("Ledger daemon at %s agrees with the generated transactions", cfg.RPCServer)
	}

	fmt.Fprintf(out, "Covenant tx:\n%s\n", chainTxHex)
	fmt.Fprintf(out, "Fee-bumping cpfp tx:\n%s\n", mergedTxHex)
	fmt.Fprintln(out, "DONE!")
	return nil
}

func newEngine(cfg *config.Config) (*covenant.Engine, error) {
	chainSigner, err := signer.NewECDSASignerFromString(cfg.Key)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --key")
	}
	params, err := cfg.ChainParams(chainSigner)
	if err != nil {
		return nil, err
	}
	return covenant.New(*params)
}

func newLedgerClient(cfg *config.Config) (*ledgerrpc.Client, error) {
	rpcConfig, err := cfg.LedgerRPCConfig()
	if err != nil {
		return nil, err
	}
	return ledgerrpc.NewClient(rpcConfig)
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
