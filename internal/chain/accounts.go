package chain

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Account is a funded test account able to sign transactions.
type Account struct {
	Address common.Address
	key     *ecdsa.PrivateKey
}

// NewAccount derives an account from its private key.
func NewAccount(key *ecdsa.PrivateKey) Account {
	return Account{Address: crypto.PubkeyToAddress(key.PublicKey), key: key}
}

// Transactor returns signing options bound to chainID.
func (a Account) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	if a.key == nil {
		return nil, fmt.Errorf("account %s has no signing key", a.Address.Hex())
	}
	return bind.NewKeyedTransactorWithChainID(a.key, chainID)
}

// ParseAccounts converts hex private keys into accounts.
func ParseAccounts(inputs []string) ([]Account, error) {
	accounts := make([]Account, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		data, err := hexutil.Decode(ensure0x(input))
		if err != nil {
			return nil, fmt.Errorf("invalid account key #%d", len(accounts))
		}
		key, err := crypto.ToECDSA(data)
		if err != nil {
			return nil, fmt.Errorf("invalid account key #%d: %w", len(accounts), err)
		}
		accounts = append(accounts, NewAccount(key))
	}
	return accounts, nil
}

// Addresses returns the addresses of accounts in order.
func Addresses(accounts []Account) []common.Address {
	out := make([]common.Address, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, account.Address)
	}
	return out
}

func ensure0x(input string) string {
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		return input
	}
	return "0x" + input
}
