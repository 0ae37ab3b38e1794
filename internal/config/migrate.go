package config

import "github.com/spf13/pflag"

// MigrateConfig holds configuration for the migrate command.
type MigrateConfig struct {
	Network
	OracleRate int64
	Reset      bool
}

// LoadMigrate merges config file, environment variables, and flags into MigrateConfig.
func LoadMigrate(cfgFile string, flags *pflag.FlagSet) (MigrateConfig, error) {
	v, err := load(cfgFile, flags, map[string]interface{}{
		"oracle-rate": int64(100),
		"reset":       false,
	})
	if err != nil {
		return MigrateConfig{}, err
	}

	return MigrateConfig{
		Network:    network(v),
		OracleRate: v.GetInt64("oracle-rate"),
		Reset:      v.GetBool("reset"),
	}, nil
}
