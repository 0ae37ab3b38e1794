// Package chaintest runs an in-process network for contract tests.
package chaintest

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/backends"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"

	"eurTokenOracle/internal/chain"
)

// ChainID of the simulated network.
const ChainID = 1337

const blockGasLimit = 30_000_000

// Network is a simulated chain that mines a block for every transaction.
type Network struct {
	*backends.SimulatedBackend

	Accounts []chain.Account

	mu sync.Mutex
}

var _ chain.Backend = (*Network)(nil)

// New starts a simulated network with n funded accounts and closes it when
// the test ends.
func New(t testing.TB, n int) *Network {
	t.Helper()

	alloc := core.GenesisAlloc{}
	accounts := make([]chain.Account, 0, n)
	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))
	for i := 0; i < n; i++ {
		key, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("generate key: %v", err)
		}
		account := chain.NewAccount(key)
		alloc[account.Address] = core.GenesisAccount{Balance: funds}
		accounts = append(accounts, account)
	}

	network := &Network{
		SimulatedBackend: backends.NewSimulatedBackend(alloc, blockGasLimit),
		Accounts:         accounts,
	}
	t.Cleanup(func() {
		network.SimulatedBackend.Close()
	})
	return network
}

// SendTransaction submits tx and mines it immediately.
func (n *Network) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.SimulatedBackend.SendTransaction(ctx, tx); err != nil {
		return err
	}
	n.SimulatedBackend.Commit()
	return nil
}

// ChainID returns the simulated chain id.
func (n *Network) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(ChainID), nil
}
