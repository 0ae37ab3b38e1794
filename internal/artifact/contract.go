package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"eurTokenOracle/internal/chain"
	"eurTokenOracle/internal/contracts"
	"eurTokenOracle/internal/model"
)

var (
	// ErrNoAccounts is returned when a deployment has no account to send from.
	ErrNoAccounts = errors.New("no accounts available")
	// ErrNotDeployed is returned when no address is recorded for the network.
	ErrNotDeployed = errors.New("has not been deployed to detected network")
	// ErrNoCode is returned when a known address holds no contract code.
	ErrNoCode = errors.New("no code at address")
	// ErrDeployFailed is returned when the deployment transaction reverted.
	ErrDeployFailed = errors.New("deployment transaction failed")
)

// AddressBook resolves the addresses of already-deployed contracts.
type AddressBook interface {
	Lookup(ctx context.Context, chainID uint64, name string) (model.Deployment, bool, error)
}

// Contract binds a compiled artifact to a network.
type Contract struct {
	name     string
	abi      abi.ABI
	bytecode []byte
	backend  chain.Backend
	book     AddressBook
	logger   *zap.Logger
}

// NewContract prepares an artifact for deployment and resolution on backend.
func NewContract(a contracts.Artifact, backend chain.Backend, book AddressBook, logger *zap.Logger) (*Contract, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	parsed, err := a.ParsedABI()
	if err != nil {
		return nil, err
	}
	code, err := a.CreationCode()
	if err != nil {
		return nil, err
	}
	return &Contract{
		name:     a.ContractName,
		abi:      parsed,
		bytecode: code,
		backend:  backend,
		book:     book,
		logger:   logger,
	}, nil
}

// Require loads an embedded artifact by name and binds it to backend.
func Require(name string, backend chain.Backend, book AddressBook, logger *zap.Logger) (*Contract, error) {
	a, err := contracts.Require(name)
	if err != nil {
		return nil, err
	}
	return NewContract(a, backend, book, logger)
}

// Name returns the contract name.
func (c *Contract) Name() string {
	return c.name
}

// New deploys a fresh instance from accounts[0] with the given constructor
// arguments and waits until it is mined.
func (c *Contract) New(ctx context.Context, accounts []chain.Account, args ...interface{}) (*Instance, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("deploy %s: %w", c.name, ErrNoAccounts)
	}

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	opts, err := accounts[0].Transactor(chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	address, tx, bound, err := bind.DeployContract(opts, c.abi, c.bytecode, c.backend, args...)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", c.name, err)
	}
	c.logger.Debug("deployment sent",
		zap.String("contract", c.name),
		zap.String("address", address.Hex()),
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.String("from", accounts[0].Address.Hex()),
	)

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait %s deployment: %w", c.name, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s tx %s: %w", c.name, tx.Hash().Hex(), ErrDeployFailed)
	}
	if err := c.requireCode(ctx, address); err != nil {
		return nil, err
	}

	c.logger.Info("contract deployed",
		zap.String("contract", c.name),
		zap.String("address", address.Hex()),
		zap.Uint64("block_number", receipt.BlockNumber.Uint64()),
		zap.Uint64("gas_used", receipt.GasUsed),
	)

	return &Instance{
		name:     c.name,
		address:  address,
		deployTx: tx,
		abi:      c.abi,
		bound:    bound,
	}, nil
}

// Deployed resolves the singleton instance recorded for the active network.
func (c *Contract) Deployed(ctx context.Context) (*Instance, error) {
	if c.book == nil {
		return nil, fmt.Errorf("%s %w", c.name, ErrNotDeployed)
	}

	chainID, err := chain.ChainIDValue(ctx, c.backend)
	if err != nil {
		return nil, err
	}
	deployment, ok, err := c.book.Lookup(ctx, chainID, c.name)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", c.name, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s %w (chain %d)", c.name, ErrNotDeployed, chainID)
	}
	if !common.IsHexAddress(deployment.Address) {
		return nil, fmt.Errorf("%s recorded with invalid address %q", c.name, deployment.Address)
	}

	instance, err := c.At(ctx, common.HexToAddress(deployment.Address))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("contract resolved",
		zap.String("contract", c.name),
		zap.String("address", deployment.Address),
		zap.Uint64("chain_id", chainID),
	)
	return instance, nil
}

// At binds to an existing deployment after checking it holds code.
func (c *Contract) At(ctx context.Context, address common.Address) (*Instance, error) {
	if err := c.requireCode(ctx, address); err != nil {
		return nil, err
	}
	return &Instance{
		name:    c.name,
		address: address,
		abi:     c.abi,
		bound:   bind.NewBoundContract(address, c.abi, c.backend, c.backend, c.backend),
	}, nil
}

func (c *Contract) requireCode(ctx context.Context, address common.Address) error {
	code, err := c.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return fmt.Errorf("get %s code: %w", c.name, err)
	}
	if len(code) == 0 {
		return fmt.Errorf("cannot create instance of %s: %w %s", c.name, ErrNoCode, address.Hex())
	}
	return nil
}
