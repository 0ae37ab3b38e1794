package migrate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"eurTokenOracle/internal/artifact"
	"eurTokenOracle/internal/chain"
	"eurTokenOracle/internal/model"
	"eurTokenOracle/internal/registry"
)

// Migrator deploys singleton contracts and records them in a registry.
type Migrator struct {
	backend  chain.Backend
	registry registry.Registry
	logger   *zap.Logger
}

func NewMigrator(backend chain.Backend, reg registry.Registry, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{backend: backend, registry: reg, logger: logger}
}

// Deploy makes contract available through Deployed on the active network.
// An existing deployment with code is kept unless reset is set.
func (m *Migrator) Deploy(ctx context.Context, contract *artifact.Contract, accounts []chain.Account, reset bool, args ...interface{}) (model.Deployment, error) {
	if m.registry == nil {
		return model.Deployment{}, fmt.Errorf("registry is nil")
	}

	chainID, err := chain.ChainIDValue(ctx, m.backend)
	if err != nil {
		return model.Deployment{}, err
	}

	if !reset {
		existing, ok, err := m.registry.Lookup(ctx, chainID, contract.Name())
		if err != nil {
			return model.Deployment{}, fmt.Errorf("lookup %s: %w", contract.Name(), err)
		}
		if ok {
			if _, err := contract.Deployed(ctx); err == nil {
				m.logger.Info("already deployed",
					zap.String("contract", contract.Name()),
					zap.String("address", existing.Address),
					zap.Uint64("chain_id", chainID),
				)
				return existing, nil
			}
			m.logger.Warn("recorded deployment has no code, redeploying",
				zap.String("contract", contract.Name()),
				zap.String("address", existing.Address),
			)
		}
	}

	instance, err := contract.New(ctx, accounts, args...)
	if err != nil {
		return model.Deployment{}, err
	}

	deployment := model.Deployment{
		ChainID:    chainID,
		Contract:   contract.Name(),
		Address:    instance.Address().Hex(),
		TxHash:     instance.DeployTx().Hash().Hex(),
		DeployedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := m.registry.Record(ctx, deployment); err != nil {
		return model.Deployment{}, fmt.Errorf("record %s: %w", contract.Name(), err)
	}

	m.logger.Info("migration recorded",
		zap.String("contract", deployment.Contract),
		zap.String("address", deployment.Address),
		zap.String("tx_hash", deployment.TxHash),
		zap.Uint64("chain_id", chainID),
	)
	return deployment, nil
}
