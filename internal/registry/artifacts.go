package registry

import (
	"context"
	"strconv"

	"eurTokenOracle/internal/contracts"
	"eurTokenOracle/internal/model"
)

// Artifacts reads the networks section baked into the embedded artifacts.
type Artifacts struct{}

func (Artifacts) Lookup(_ context.Context, chainID uint64, name string) (model.Deployment, bool, error) {
	a, err := contracts.Require(name)
	if err != nil {
		return model.Deployment{}, false, nil
	}
	entry, ok := a.Networks[strconv.FormatUint(chainID, 10)]
	if !ok || entry.Address == "" {
		return model.Deployment{}, false, nil
	}
	return model.Deployment{
		ChainID:  chainID,
		Contract: a.ContractName,
		Address:  entry.Address,
		TxHash:   entry.TransactionHash,
	}, true, nil
}

func (Artifacts) Record(context.Context, model.Deployment) error {
	return ErrReadOnly
}

func (Artifacts) List(_ context.Context, chainID uint64) ([]model.Deployment, error) {
	names, err := contracts.Names()
	if err != nil {
		return nil, err
	}
	out := make([]model.Deployment, 0)
	for _, name := range names {
		a, err := contracts.Require(name)
		if err != nil {
			return nil, err
		}
		for network, entry := range a.Networks {
			id, err := strconv.ParseUint(network, 10, 64)
			if err != nil || entry.Address == "" {
				continue
			}
			if chainID != 0 && id != chainID {
				continue
			}
			out = append(out, model.Deployment{
				ChainID:  id,
				Contract: a.ContractName,
				Address:  entry.Address,
				TxHash:   entry.TransactionHash,
			})
		}
	}
	sortDeployments(out)
	return out, nil
}
