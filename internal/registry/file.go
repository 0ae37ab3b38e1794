package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"eurTokenOracle/internal/model"
)

// fileLayout maps chain id -> contract name -> deployment.
type fileLayout map[string]map[string]model.Deployment

// File persists deployments to a JSON file on disk.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Lookup(_ context.Context, chainID uint64, name string) (model.Deployment, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	layout, err := f.load()
	if err != nil {
		return model.Deployment{}, false, err
	}
	deployment, ok := layout[strconv.FormatUint(chainID, 10)][name]
	return deployment, ok, nil
}

func (f *File) Record(_ context.Context, deployment model.Deployment) error {
	if err := validate(deployment); err != nil {
		return err
	}
	if deployment.DeployedAt == "" {
		deployment.DeployedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	layout, err := f.load()
	if err != nil {
		return err
	}
	network := strconv.FormatUint(deployment.ChainID, 10)
	if layout[network] == nil {
		layout[network] = make(map[string]model.Deployment)
	}
	layout[network][deployment.Contract] = deployment
	return f.save(layout)
}

func (f *File) List(_ context.Context, chainID uint64) ([]model.Deployment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	layout, err := f.load()
	if err != nil {
		return nil, err
	}
	out := make([]model.Deployment, 0)
	for network, byName := range layout {
		if chainID != 0 && network != strconv.FormatUint(chainID, 10) {
			continue
		}
		for _, deployment := range byName {
			out = append(out, deployment)
		}
	}
	sortDeployments(out)
	return out, nil
}

func (f *File) load() (fileLayout, error) {
	stat, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileLayout{}, nil
		}
		return nil, fmt.Errorf("stat registry: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("registry path is a directory")
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	layout := fileLayout{}
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return layout, nil
}

func (f *File) save(layout fileLayout) error {
	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create registry dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write registry tmp: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("rename registry: %w", err)
	}
	return nil
}
