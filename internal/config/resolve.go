package config

import "github.com/spf13/pflag"

// ResolveConfig holds configuration for the resolve command.
type ResolveConfig struct {
	Network
	InitialBalance int64
	Out            string
}

// LoadResolve merges config file, environment variables, and flags into ResolveConfig.
func LoadResolve(cfgFile string, flags *pflag.FlagSet) (ResolveConfig, error) {
	v, err := load(cfgFile, flags, map[string]interface{}{
		"initial-balance": int64(1000),
		"out":             "./data/fixture_runs.jsonl",
	})
	if err != nil {
		return ResolveConfig{}, err
	}

	return ResolveConfig{
		Network:        network(v),
		InitialBalance: v.GetInt64("initial-balance"),
		Out:            v.GetString("out"),
	}, nil
}

// NetworksConfig holds configuration for the networks command.
type NetworksConfig struct {
	Network
	ChainID uint64
}

// LoadNetworks merges config file, environment variables, and flags into NetworksConfig.
func LoadNetworks(cfgFile string, flags *pflag.FlagSet) (NetworksConfig, error) {
	v, err := load(cfgFile, flags, nil)
	if err != nil {
		return NetworksConfig{}, err
	}

	return NetworksConfig{
		Network: network(v),
		ChainID: v.GetUint64("chain-id"),
	}, nil
}
