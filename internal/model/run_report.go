package model

// CheckResult is the outcome of one named fixture check.
type CheckResult struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Passed  bool   `json:"passed"`
}

// RunReport summarizes one fixture resolution against a network.
type RunReport struct {
	ChainID    uint64        `json:"chain_id"`
	Deployer   string        `json:"deployer,omitempty"`
	Token      string        `json:"token,omitempty"`
	TokenTx    string        `json:"token_tx,omitempty"`
	Oracle     string        `json:"oracle,omitempty"`
	Checks     []CheckResult `json:"checks"`
	StartedAt  string        `json:"started_at"`
	DurationMS int64         `json:"duration_ms"`
	Error      string        `json:"error,omitempty"`
}

// Passed reports whether the run resolved and every check passed.
func (r RunReport) Passed() bool {
	if r.Error != "" {
		return false
	}
	for _, check := range r.Checks {
		if !check.Passed {
			return false
		}
	}
	return true
}
