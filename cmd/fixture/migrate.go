package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eurTokenOracle/internal/artifact"
	"eurTokenOracle/internal/chain"
	"eurTokenOracle/internal/config"
	"eurTokenOracle/internal/fixture"
	"eurTokenOracle/internal/migrate"
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadMigrate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	accounts, err := chain.ParseAccounts(cfg.Accounts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	reg, store, err := openRegistry(ctx, cfg.Network)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	backend := chainClient.Backend()
	oracle, err := artifact.Require(fixture.OracleName, backend, reg, logger)
	if err != nil {
		return err
	}

	logger.Info("migrate start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("accounts", len(accounts)),
		zap.String("registry", cfg.Registry),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Int64("oracle_rate", cfg.OracleRate),
		zap.Bool("reset", cfg.Reset),
	)

	deployment, err := migrate.NewMigrator(backend, reg, logger).
		Deploy(ctx, oracle, accounts, cfg.Reset, big.NewInt(cfg.OracleRate))
	if err != nil {
		return err
	}

	logger.Info("migrate complete",
		zap.String("contract", deployment.Contract),
		zap.String("address", deployment.Address),
		zap.Uint64("chain_id", deployment.ChainID),
	)
	return nil
}
