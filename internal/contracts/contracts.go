package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

//go:embed build/*.json
var buildFS embed.FS

// Artifact is a compiled contract as emitted by the build pipeline.
type Artifact struct {
	ContractName     string                  `json:"contractName"`
	ABI              json.RawMessage         `json:"abi"`
	Bytecode         string                  `json:"bytecode"`
	DeployedBytecode string                  `json:"deployedBytecode"`
	Networks         map[string]NetworkEntry `json:"networks"`
}

// NetworkEntry records where an artifact lives on a given network id.
type NetworkEntry struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// ParsedABI parses the artifact ABI.
func (a Artifact) ParsedABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(string(a.ABI)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse %s abi: %w", a.ContractName, err)
	}
	return parsed, nil
}

// CreationCode decodes the deployment bytecode.
func (a Artifact) CreationCode() ([]byte, error) {
	code, err := hexutil.Decode(a.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("decode %s bytecode: %w", a.ContractName, err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%s has empty bytecode", a.ContractName)
	}
	return code, nil
}

// RuntimeCode returns the code expected at a deployed address.
func (a Artifact) RuntimeCode() []byte {
	return common.FromHex(a.DeployedBytecode)
}

var (
	artifacts     map[string]Artifact
	artifactsOnce sync.Once
	artifactsErr  error
)

func load() (map[string]Artifact, error) {
	artifactsOnce.Do(func() {
		entries, err := buildFS.ReadDir("build")
		if err != nil {
			artifactsErr = fmt.Errorf("read build dir: %w", err)
			return
		}
		out := make(map[string]Artifact, len(entries))
		for _, entry := range entries {
			data, err := buildFS.ReadFile(path.Join("build", entry.Name()))
			if err != nil {
				artifactsErr = fmt.Errorf("read %s: %w", entry.Name(), err)
				return
			}
			var a Artifact
			if err := json.Unmarshal(data, &a); err != nil {
				artifactsErr = fmt.Errorf("parse %s: %w", entry.Name(), err)
				return
			}
			if a.ContractName == "" {
				a.ContractName = strings.TrimSuffix(entry.Name(), ".json")
			}
			out[a.ContractName] = a
		}
		artifacts = out
	})
	return artifacts, artifactsErr
}

// Require returns the artifact for a contract. Source-style references such
// as "./Oracle.sol" resolve to the "Oracle" artifact.
func Require(name string) (Artifact, error) {
	all, err := load()
	if err != nil {
		return Artifact{}, err
	}
	key := strings.TrimSuffix(path.Base(strings.TrimSpace(name)), ".sol")
	a, ok := all[key]
	if !ok {
		return Artifact{}, fmt.Errorf("could not find artifact for %s", name)
	}
	return a, nil
}

// Names lists the embedded artifacts in sorted order.
func Names() ([]string, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
