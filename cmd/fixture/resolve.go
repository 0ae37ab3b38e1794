package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eurTokenOracle/internal/chain"
	"eurTokenOracle/internal/config"
	"eurTokenOracle/internal/fixture"
	"eurTokenOracle/internal/model"
	"eurTokenOracle/internal/storage"
)

func runResolve(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadResolve(cfgFile, cmd.Flags())
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
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
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
	sinks := storage.Multi{storage.NewJsonlStorage(cfg.Out)}
	if store != nil {
		defer store.Close()
		sinks = append(sinks, store)
	}

	backend := chainClient.Backend()
	chainID, err := chain.ChainIDValue(ctx, backend)
	if err != nil {
		return err
	}

	resolver, err := fixture.Load(fixture.Config{InitialBalance: big.NewInt(cfg.InitialBalance)}, backend, reg, logger)
	if err != nil {
		return err
	}

	logger.Info("resolve start",
		zap.String("rpc", cfg.RPCURL),
		zap.Uint64("chain_id", chainID),
		zap.Int("accounts", len(accounts)),
		zap.Int64("initial_balance", cfg.InitialBalance),
		zap.String("out", cfg.Out),
	)

	started := time.Now().UTC()
	res, resolveErr := resolver.Resolve(ctx, accounts)
	report := buildRunReport(chainID, accounts, res, resolveErr, started)

	for _, check := range report.Checks {
		if check.Passed {
			logger.Info("check passed", zap.String("name", check.Name))
		} else {
			logger.Error("check failed", zap.String("name", check.Name), zap.String("message", check.Message))
		}
	}

	if err := sinks.PutRunReport(ctx, report); err != nil {
		return fmt.Errorf("store run report: %w", err)
	}

	if resolveErr != nil {
		return resolveErr
	}
	if !report.Passed() {
		return fmt.Errorf("fixture checks failed")
	}

	logger.Info("resolve complete",
		zap.String("token", report.Token),
		zap.String("oracle", report.Oracle),
		zap.Int64("duration_ms", report.DurationMS),
	)
	return nil
}

// buildRunReport records checks only when resolution succeeded.
func buildRunReport(chainID uint64, accounts []chain.Account, res *fixture.Result, resolveErr error, started time.Time) model.RunReport {
	report := model.RunReport{
		ChainID:    chainID,
		Checks:     []model.CheckResult{},
		StartedAt:  started.Format(time.RFC3339Nano),
		DurationMS: time.Since(started).Milliseconds(),
	}
	if len(accounts) > 0 {
		report.Deployer = accounts[0].Address.Hex()
	}
	if resolveErr != nil {
		report.Error = resolveErr.Error()
		return report
	}

	if res.TokenInstance != nil {
		report.Token = res.TokenInstance.Address().Hex()
		if tx := res.TokenInstance.DeployTx(); tx != nil {
			report.TokenTx = tx.Hash().Hex()
		}
	}
	if res.OracleInstance != nil {
		report.Oracle = res.OracleInstance.Address().Hex()
	}
	for _, check := range fixture.Checks(res) {
		report.Checks = append(report.Checks, model.CheckResult{
			Name:    check.Name,
			Message: check.Message,
			Passed:  check.Passed,
		})
	}
	return report
}
