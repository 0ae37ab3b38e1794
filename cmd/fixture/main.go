package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"eurTokenOracle/internal/config"
	"eurTokenOracle/internal/registry"
	"eurTokenOracle/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "fixture",
		Short:        "EURToken/Oracle integration fixture",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Deploy the Oracle singleton and record its address",
		RunE:  runMigrate,
	}

	addNetworkFlags(migrateCmd)
	migrateCmd.Flags().Int64("oracle-rate", 100, "Oracle constructor rate")
	migrateCmd.Flags().Bool("reset", false, "redeploy even if a deployment is recorded")

	root.AddCommand(migrateCmd)

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Deploy a new EURToken, resolve the Oracle and check both",
		RunE:  runResolve,
	}

	addNetworkFlags(resolveCmd)
	resolveCmd.Flags().Int64("initial-balance", 1000, "EURToken constructor initial balance")
	resolveCmd.Flags().String("out", "./data/fixture_runs.jsonl", "run report JSONL path")

	root.AddCommand(resolveCmd)

	networksCmd := &cobra.Command{
		Use:   "networks",
		Short: "List recorded deployments",
		RunE:  runNetworks,
	}

	networksCmd.Flags().String("registry", "./data/deployments.json", "deployment registry file")
	networksCmd.Flags().String("pg-dsn", "", "Postgres DSN (replaces the registry file)")
	networksCmd.Flags().Uint64("chain-id", 0, "only list this chain, 0 means all")
	networksCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(networksCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "JSON-RPC URL of the test network")
	cmd.Flags().StringSlice("accounts", nil, "hex private keys of funded accounts (comma-separated), first one deploys")
	cmd.Flags().String("registry", "./data/deployments.json", "deployment registry file")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN (replaces the registry file)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// openRegistry returns the configured registry and, when Postgres is used,
// the store backing it. The artifacts' own networks section is consulted
// last.
func openRegistry(ctx context.Context, cfg config.Network) (registry.Registry, *postgres.Store, error) {
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return registry.Chain{store, registry.Artifacts{}}, store, nil
	}
	if cfg.Registry == "" {
		return nil, nil, fmt.Errorf("registry path or pg dsn is required")
	}
	return registry.Chain{registry.NewFile(cfg.Registry), registry.Artifacts{}}, nil, nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
