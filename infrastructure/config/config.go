package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/infrastructure/ledgerrpc"
)

const (
	defaultConfigFilename = "covchain.conf"
	defaultLogFilename    = "covchain.log"
	defaultLogLevel       = "info"
)

var (
	// DefaultAppDir is the default home directory for covchain.
	DefaultAppDir = btcutil.AppDataDir("covchain", false)

	defaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(DefaultAppDir, "logs")
)

// RPCFlags holds the options for reaching the ledger daemon.
type RPCFlags struct {
	RPCServer  string `short:"s" long:"rpcserver" description:"Ledger daemon RPC server to connect to (default 127.0.0.1 on the network's RPC port)"`
	RPCUser    string `short:"u" long:"rpcuser" description:"Username for RPC connections"`
	RPCPass    string `short:"P" long:"rpcpass" default-mask:"-" description:"Password for RPC connections"`
	RPCCert    string `long:"rpccert" description:"File containing the ledger daemon's TLS certificate"`
	DisableTLS bool   `long:"notls" description:"Connect to the ledger daemon over plain HTTP"`
	CrossCheck bool   `long:"crosscheck" description:"Cross-check every decoded transaction against the ledger daemon"`
}

// Flags defines the configuration options for covchain.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	NoLogFile   bool   `long:"nologfile" description:"Log to the console only"`
	LogLevel    string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	ChainFlags
	RPCFlags
	NetworkFlags
}

// Config defines the resolved configuration options for covchain.
type Config struct {
	*Flags
	LogFile string
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile: defaultConfigFile,
		LogDir:     defaultLogDir,
		LogLevel:   defaultLogLevel,
		ChainFlags: defaultChainFlags(),
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// LoadConfig parses args into a Config and returns the remaining positional
// arguments.
//
// The configuration proceeds as follows:
// 	1) Start with a default config with the signet deployment's settings
// 	2) Pre-parse the command line to check for an alternative config file
// 	3) Load the configuration file, if one exists, overwriting defaults
// 	4) Parse CLI options and overwrite/add any specified options
func LoadConfig(args []string) (*Config, []string, error) {
	preCfg := defaultFlags()
	preParser := flags.NewParser(preCfg, flags.HelpFlag|flags.PassDoubleDash|flags.IgnoreUnknown)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	cfgFlags := defaultFlags()
	parser := flags.NewParser(cfgFlags, flags.HelpFlag|flags.PassDoubleDash)

	configFile := cleanAndExpandPath(preCfg.ConfigFile)
	if _, err := os.Stat(configFile); err == nil {
		err := flags.NewIniParser(parser).ParseFile(configFile)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "error parsing config file %s", configFile)
		}
	} else if preCfg.ConfigFile != defaultConfigFile {
		return nil, nil, errors.Errorf("config file %s does not exist", configFile)
	}

	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	err = cfgFlags.ResolveNetwork(parser)
	if err != nil {
		return nil, nil, err
	}

	cfg := &Config{Flags: cfgFlags}
	if !cfgFlags.NoLogFile {
		logDir := filepath.Join(cleanAndExpandPath(cfgFlags.LogDir), cfgFlags.NetParams().Name)
		cfg.LogFile = filepath.Join(logDir, defaultLogFilename)
	}

	if cfgFlags.RPCServer == "" {
		cfgFlags.RPCServer = cfgFlags.DefaultRPCServer()
	}
	if cfgFlags.CrossCheck && (cfgFlags.RPCUser == "" || cfgFlags.RPCPass == "") {
		err := errors.New("--crosscheck requires --rpcuser and --rpcpass")
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	return cfg, remainingArgs, nil
}

// LedgerRPCConfig returns the ledger daemon client configuration.
func (cfg *Config) LedgerRPCConfig() (*ledgerrpc.Config, error) {
	rpcConfig := &ledgerrpc.Config{
		Host:       cfg.RPCServer,
		User:       cfg.RPCUser,
		Pass:       cfg.RPCPass,
		DisableTLS: cfg.DisableTLS,
	}
	if !cfg.DisableTLS && cfg.RPCCert != "" {
		certificates, err := ioutil.ReadFile(cleanAndExpandPath(cfg.RPCCert))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read RPC certificate %s", cfg.RPCCert)
		}
		rpcConfig.Certificates = certificates
	}
	return rpcConfig, nil
}
