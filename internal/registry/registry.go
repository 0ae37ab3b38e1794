package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"eurTokenOracle/internal/model"
)

// ErrReadOnly is returned by registries that cannot record deployments.
var ErrReadOnly = errors.New("registry is read-only")

// Registry is an address book of deployed singletons keyed by chain id and
// contract name.
type Registry interface {
	Lookup(ctx context.Context, chainID uint64, name string) (model.Deployment, bool, error)
	Record(ctx context.Context, deployment model.Deployment) error
	List(ctx context.Context, chainID uint64) ([]model.Deployment, error)
}

func validate(deployment model.Deployment) error {
	if deployment.Contract == "" {
		return fmt.Errorf("deployment contract name required")
	}
	if deployment.Address == "" {
		return fmt.Errorf("deployment address required")
	}
	return nil
}

func sortDeployments(deployments []model.Deployment) {
	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].ChainID != deployments[j].ChainID {
			return deployments[i].ChainID < deployments[j].ChainID
		}
		return deployments[i].Contract < deployments[j].Contract
	})
}

type key struct {
	chainID uint64
	name    string
}

// Memory keeps deployments in process.
type Memory struct {
	mu   sync.RWMutex
	data map[key]model.Deployment
}

func NewMemory() *Memory {
	return &Memory{data: make(map[key]model.Deployment)}
}

func (m *Memory) Lookup(_ context.Context, chainID uint64, name string) (model.Deployment, bool, error) {
	m.mu.RLock()
	deployment, ok := m.data[key{chainID, name}]
	m.mu.RUnlock()
	return deployment, ok, nil
}

func (m *Memory) Record(_ context.Context, deployment model.Deployment) error {
	if err := validate(deployment); err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key{deployment.ChainID, deployment.Contract}] = deployment
	m.mu.Unlock()
	return nil
}

// List returns deployments for chainID, or all of them when chainID is 0.
func (m *Memory) List(_ context.Context, chainID uint64) ([]model.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Deployment, 0, len(m.data))
	for k, deployment := range m.data {
		if chainID != 0 && k.chainID != chainID {
			continue
		}
		out = append(out, deployment)
	}
	sortDeployments(out)
	return out, nil
}

// Chain consults registries in order. Records go to the first one.
type Chain []Registry

func (c Chain) Lookup(ctx context.Context, chainID uint64, name string) (model.Deployment, bool, error) {
	for _, r := range c {
		deployment, ok, err := r.Lookup(ctx, chainID, name)
		if err != nil {
			return model.Deployment{}, false, err
		}
		if ok {
			return deployment, true, nil
		}
	}
	return model.Deployment{}, false, nil
}

func (c Chain) Record(ctx context.Context, deployment model.Deployment) error {
	if len(c) == 0 {
		return ErrReadOnly
	}
	return c[0].Record(ctx, deployment)
}

// List merges all registries; earlier registries shadow later ones.
func (c Chain) List(ctx context.Context, chainID uint64) ([]model.Deployment, error) {
	seen := make(map[key]struct{})
	out := make([]model.Deployment, 0)
	for _, r := range c {
		deployments, err := r.List(ctx, chainID)
		if err != nil {
			return nil, err
		}
		for _, deployment := range deployments {
			k := key{deployment.ChainID, deployment.Contract}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, deployment)
		}
	}
	sortDeployments(out)
	return out, nil
}
