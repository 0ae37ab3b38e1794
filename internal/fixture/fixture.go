// Package fixture resolves the EURToken and Oracle instances shared by the
// integration tests of a run.
package fixture

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"eurTokenOracle/internal/artifact"
	"eurTokenOracle/internal/chain"
)

const (
	TokenName  = "EURToken"
	OracleName = "Oracle"

	// DefaultInitialBalance is the EURToken constructor argument.
	DefaultInitialBalance = 1000
)

// Resolvable obtains contract instances from a network.
type Resolvable interface {
	Name() string
	New(ctx context.Context, accounts []chain.Account, args ...interface{}) (*artifact.Instance, error)
	Deployed(ctx context.Context) (*artifact.Instance, error)
}

// Result holds the live instances handed to dependent tests.
type Result struct {
	TokenInstance  *artifact.Instance
	OracleInstance *artifact.Instance
}

// Config holds fixture settings.
type Config struct {
	InitialBalance *big.Int
}

// Resolver builds a Result from a fresh EURToken and the deployed Oracle.
type Resolver struct {
	cfg    Config
	token  Resolvable
	oracle Resolvable
	logger *zap.Logger
}

// NewResolver builds a Resolver with its collaborators.
func NewResolver(cfg Config, token, oracle Resolvable, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.InitialBalance == nil {
		cfg.InitialBalance = big.NewInt(DefaultInitialBalance)
	}
	return &Resolver{cfg: cfg, token: token, oracle: oracle, logger: logger}
}

// Load binds the embedded EURToken and Oracle artifacts to backend and
// returns a Resolver over them. book supplies the Oracle address.
func Load(cfg Config, backend chain.Backend, book artifact.AddressBook, logger *zap.Logger) (*Resolver, error) {
	token, err := artifact.Require(TokenName, backend, book, logger)
	if err != nil {
		return nil, err
	}
	oracle, err := artifact.Require(OracleName, backend, book, logger)
	if err != nil {
		return nil, err
	}
	return NewResolver(cfg, token, oracle, logger), nil
}

// Resolve deploys a new EURToken from accounts[0] and resolves the deployed
// Oracle concurrently. It returns once both have settled. Any failure of
// either step fails the whole call and no Result is returned.
func (r *Resolver) Resolve(ctx context.Context, accounts []chain.Account) (*Result, error) {
	if r.token == nil || r.oracle == nil {
		return nil, fmt.Errorf("token and oracle contracts are required")
	}

	var (
		g      errgroup.Group
		token  *artifact.Instance
		oracle *artifact.Instance
	)

	args := []interface{}{new(big.Int).Set(r.cfg.InitialBalance)}
	g.Go(func() error {
		instance, err := r.token.New(ctx, accounts, args...)
		if err != nil {
			return fmt.Errorf("new %s: %w", r.token.Name(), err)
		}
		token = instance
		return nil
	})
	g.Go(func() error {
		instance, err := r.oracle.Deployed(ctx)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", r.oracle.Name(), err)
		}
		oracle = instance
		return nil
	})

	if err := g.Wait(); err != nil {
		r.logger.Warn("fixture resolution failed", zap.Error(err))
		return nil, err
	}

	result := &Result{TokenInstance: token, OracleInstance: oracle}
	r.logger.Info("fixture resolved",
		zap.String("token", instanceAddress(token)),
		zap.String("oracle", instanceAddress(oracle)),
	)
	return result, nil
}

func instanceAddress(instance *artifact.Instance) string {
	if instance == nil {
		return ""
	}
	return instance.Address().Hex()
}
