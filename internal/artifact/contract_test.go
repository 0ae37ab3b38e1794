package artifact

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"eurTokenOracle/internal/chain/chaintest"
	"eurTokenOracle/internal/model"
	"eurTokenOracle/internal/registry"
)

func TestNewDeploysWithConstructorArgs(t *testing.T) {
	ctx := context.Background()
	network := chaintest.New(t, 2)

	token, err := Require("./EURToken.sol", network, nil, nil)
	if err != nil {
		t.Fatalf("require: %v", err)
	}

	instance, err := token.New(ctx, network.Accounts, big.NewInt(1000))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if instance.Name() != "EURToken" {
		t.Fatalf("unexpected name %s", instance.Name())
	}
	if instance.DeployTx() == nil {
		t.Fatalf("expected deploy tx for new instance")
	}

	supply, err := instance.Call(ctx, "totalSupply")
	if err != nil {
		t.Fatalf("totalSupply: %v", err)
	}
	if got := supply[0].(*big.Int); got.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("totalSupply mismatch: %s", got)
	}

	balance, err := instance.Call(ctx, "balanceOf", network.Accounts[0].Address)
	if err != nil {
		t.Fatalf("balanceOf: %v", err)
	}
	if got := balance[0].(*big.Int); got.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("deployer balance mismatch: %s", got)
	}

	balance, err = instance.Call(ctx, "balanceOf", network.Accounts[1].Address)
	if err != nil {
		t.Fatalf("balanceOf: %v", err)
	}
	if got := balance[0].(*big.Int); got.Sign() != 0 {
		t.Fatalf("expected empty balance for second account, got %s", got)
	}
}

func TestNewTwiceYieldsDistinctAddresses(t *testing.T) {
	ctx := context.Background()
	network := chaintest.New(t, 1)

	token, err := Require("EURToken", network, nil, nil)
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	first, err := token.New(ctx, network.Accounts, big.NewInt(1000))
	if err != nil {
		t.Fatalf("first new: %v", err)
	}
	second, err := token.New(ctx, network.Accounts, big.NewInt(1000))
	if err != nil {
		t.Fatalf("second new: %v", err)
	}
	if first.Address() == second.Address() {
		t.Fatalf("expected distinct addresses, both %s", first.Address().Hex())
	}
}

func TestNewWithoutAccounts(t *testing.T) {
	network := chaintest.New(t, 0)
	token, err := Require("EURToken", network, nil, nil)
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	if _, err := token.New(context.Background(), nil, big.NewInt(1000)); !errors.Is(err, ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}
}

func TestNewWithBadConstructorArgs(t *testing.T) {
	network := chaintest.New(t, 1)
	token, err := Require("EURToken", network, nil, nil)
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	if _, err := token.New(context.Background(), network.Accounts, "not-a-number"); err == nil {
		t.Fatalf("expected pack error for bad constructor argument")
	}
}

func TestDeployedResolvesRecordedInstance(t *testing.T) {
	ctx := context.Background()
	network := chaintest.New(t, 1)
	book := registry.NewMemory()

	oracle, err := Require("Oracle", network, book, nil)
	if err != nil {
		t.Fatalf("require: %v", err)
	}

	if _, err := oracle.Deployed(ctx); !errors.Is(err, ErrNotDeployed) {
		t.Fatalf("expected ErrNotDeployed before migration, got %v", err)
	}

	created, err := oracle.New(ctx, network.Accounts, big.NewInt(115))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := book.Record(ctx, model.Deployment{
		ChainID:  chaintest.ChainID,
		Contract: "Oracle",
		Address:  created.Address().Hex(),
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	resolved, err := oracle.Deployed(ctx)
	if err != nil {
		t.Fatalf("deployed: %v", err)
	}
	if resolved.Address() != created.Address() {
		t.Fatalf("address mismatch: %s != %s", resolved.Address().Hex(), created.Address().Hex())
	}
	if resolved.DeployTx() != nil {
		t.Fatalf("resolved instance should not carry a deploy tx")
	}

	owner, err := resolved.Call(ctx, "owner")
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if got := owner[0].(common.Address); got != network.Accounts[0].Address {
		t.Fatalf("owner mismatch: %s", got.Hex())
	}

	rate, err := resolved.Call(ctx, "rate")
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if got := rate[0].(*big.Int); got.Cmp(big.NewInt(115)) != 0 {
		t.Fatalf("rate mismatch: %s", got)
	}
}

func TestDeployedWithoutCode(t *testing.T) {
	ctx := context.Background()
	network := chaintest.New(t, 1)
	book := registry.NewMemory()
	if err := book.Record(ctx, model.Deployment{
		ChainID:  chaintest.ChainID,
		Contract: "Oracle",
		Address:  "0x1111111111111111111111111111111111111111",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	oracle, err := Require("Oracle", network, book, nil)
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	if _, err := oracle.Deployed(ctx); !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}
}

func TestDeployedOtherNetwork(t *testing.T) {
	ctx := context.Background()
	network := chaintest.New(t, 1)
	book := registry.NewMemory()

	oracle, err := Require("Oracle", network, book, nil)
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	created, err := oracle.New(ctx, network.Accounts, big.NewInt(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := book.Record(ctx, model.Deployment{
		ChainID:  chaintest.ChainID + 1,
		Contract: "Oracle",
		Address:  created.Address().Hex(),
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := oracle.Deployed(ctx); !errors.Is(err, ErrNotDeployed) {
		t.Fatalf("expected ErrNotDeployed for other network, got %v", err)
	}
}
