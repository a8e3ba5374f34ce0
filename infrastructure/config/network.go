package config

import (
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// signetParams shares testnet's address encoding, which is all covenant
// chains need from the network parameters.
var signetParams = func() chaincfg.Params {
	params := chaincfg.TestNet3Params
	params.Name = "signet"
	params.DefaultPort = "38333"
	return params
}()

// defaultRPCPorts maps network names to the ledger daemon's default RPC port.
var defaultRPCPorts = map[string]string{
	chaincfg.MainNetParams.Name:       "8332",
	chaincfg.TestNet3Params.Name:      "18332",
	chaincfg.RegressionNetParams.Name: "18443",
	signetParams.Name:                 "38332",
}

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Mainnet bool `long:"mainnet" description:"Use the main network"`
	Testnet bool `long:"testnet" description:"Use the test network"`
	Regtest bool `long:"regtest" description:"Use the regression test network"`
	Signet  bool `long:"signet" description:"Use the signet test network (default)"`

	ActiveNetParams *chaincfg.Params
}

// ResolveNetwork parses the network command line argument and sets
// ActiveNetParams accordingly. Signet, where the default chain parameters
// were deployed, is the default. It returns an error if more than one
// network was selected.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	networkFlags.ActiveNetParams = &signetParams
	numNets := 0
	if networkFlags.Mainnet {
		numNets++
		networkFlags.ActiveNetParams = &chaincfg.MainNetParams
	}
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = &chaincfg.TestNet3Params
	}
	if networkFlags.Regtest {
		numNets++
		networkFlags.ActiveNetParams = &chaincfg.RegressionNetParams
	}
	if networkFlags.Signet {
		numNets++
		networkFlags.ActiveNetParams = &signetParams
	}
	if numNets > 1 {
		err := errors.New("Multiple networks parameters (mainnet, testnet, regtest, signet) cannot be used " +
			"together. Please choose only one network")
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}
	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}

// ScriptHashAddressVersion returns the version byte of pay-to-script-hash
// addresses on the active network.
func (networkFlags *NetworkFlags) ScriptHashAddressVersion() byte {
	return networkFlags.ActiveNetParams.ScriptHashAddrID
}

// DefaultRPCServer returns the loopback address of the ledger daemon's RPC
// server on the active network.
func (networkFlags *NetworkFlags) DefaultRPCServer() string {
	return "127.0.0.1:" + defaultRPCPorts[networkFlags.ActiveNetParams.Name]
}
