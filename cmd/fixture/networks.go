package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eurTokenOracle/internal/config"
)

func runNetworks(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadNetworks(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, store, err := openRegistry(ctx, cfg.Network)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	deployments, err := reg.List(ctx, cfg.ChainID)
	if err != nil {
		return err
	}

	logger.Debug("deployments listed", zap.Int("count", len(deployments)), zap.Uint64("chain_id", cfg.ChainID))

	encoder := json.NewEncoder(cmd.OutOrStdout())
	for _, deployment := range deployments {
		if err := encoder.Encode(deployment); err != nil {
			return err
		}
	}
	return nil
}
