package model

// Deployment records where a contract lives on a network.
type Deployment struct {
	ChainID    uint64 `json:"chain_id"`
	Contract   string `json:"contract"`
	Address    string `json:"address"`
	TxHash     string `json:"tx_hash,omitempty"`
	DeployedAt string `json:"deployed_at,omitempty"`
}
