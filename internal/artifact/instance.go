package artifact

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Instance is a live handle to a deployed contract.
type Instance struct {
	name     string
	address  common.Address
	deployTx *types.Transaction
	abi      abi.ABI
	bound    *bind.BoundContract
}

func (i *Instance) Name() string {
	return i.name
}

func (i *Instance) Address() common.Address {
	return i.address
}

// DeployTx is the creating transaction, or nil for resolved instances.
func (i *Instance) DeployTx() *types.Transaction {
	return i.deployTx
}

func (i *Instance) ABI() abi.ABI {
	return i.abi
}

// Call invokes a constant method and returns its unpacked outputs.
func (i *Instance) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := i.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", i.name, method, err)
	}
	return out, nil
}

// Transact sends a state-changing method call.
func (i *Instance) Transact(opts *bind.TransactOpts, method string, args ...interface{}) (*types.Transaction, error) {
	tx, err := i.bound.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("transact %s.%s: %w", i.name, method, err)
	}
	return tx, nil
}
