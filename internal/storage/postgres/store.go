package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eurTokenOracle/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS deployments (
	chain_id      BIGINT      NOT NULL,
	contract_name TEXT        NOT NULL,
	address       TEXT        NOT NULL,
	tx_hash       TEXT        NOT NULL DEFAULT '',
	deployed_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, contract_name)
);
CREATE TABLE IF NOT EXISTS fixture_runs (
	id          BIGSERIAL   PRIMARY KEY,
	chain_id    BIGINT      NOT NULL,
	deployer    TEXT        NOT NULL DEFAULT '',
	token       TEXT        NOT NULL DEFAULT '',
	token_tx    TEXT        NOT NULL DEFAULT '',
	oracle      TEXT        NOT NULL DEFAULT '',
	checks      JSONB       NOT NULL,
	passed      BOOLEAN     NOT NULL,
	error       TEXT        NOT NULL DEFAULT '',
	started_at  TIMESTAMPTZ NOT NULL,
	duration_ms BIGINT      NOT NULL
);
`

// Store provides Postgres persistence for deployments and run reports.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables used by the store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Lookup returns the deployment recorded for a contract on chainID.
func (s *Store) Lookup(ctx context.Context, chainID uint64, name string) (model.Deployment, bool, error) {
	if name == "" {
		return model.Deployment{}, false, fmt.Errorf("contract name required")
	}
	row := s.pool.QueryRow(ctx, `
		SELECT chain_id, contract_name, address, tx_hash, deployed_at
		FROM deployments WHERE chain_id=$1 AND contract_name=$2
	`, int64(chainID), name)

	deployment, err := scanDeployment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Deployment{}, false, nil
		}
		return model.Deployment{}, false, err
	}
	return deployment, true, nil
}

// Record inserts or replaces the deployment of a contract on a chain.
func (s *Store) Record(ctx context.Context, deployment model.Deployment) error {
	if deployment.Contract == "" || deployment.Address == "" {
		return fmt.Errorf("deployment contract and address required")
	}
	deployedAt := time.Now().UTC()
	if deployment.DeployedAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, deployment.DeployedAt)
		if err != nil {
			return fmt.Errorf("parse deployed_at: %w", err)
		}
		deployedAt = parsed
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO deployments (chain_id, contract_name, address, tx_hash, deployed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (chain_id, contract_name) DO UPDATE
		SET address = EXCLUDED.address,
			tx_hash = EXCLUDED.tx_hash,
			deployed_at = EXCLUDED.deployed_at,
			updated_at = now()
	`,
		int64(deployment.ChainID),
		deployment.Contract,
		deployment.Address,
		deployment.TxHash,
		deployedAt,
	)
	return err
}

// List returns deployments on chainID, or on every chain when chainID is 0.
func (s *Store) List(ctx context.Context, chainID uint64) ([]model.Deployment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT chain_id, contract_name, address, tx_hash, deployed_at
		FROM deployments
		WHERE $1::bigint = 0 OR chain_id = $1::bigint
		ORDER BY chain_id, contract_name
	`, int64(chainID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Deployment, 0)
	for rows.Next() {
		deployment, err := scanDeployment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, deployment)
	}
	return out, rows.Err()
}

// PutRunReport stores a fixture run.
func (s *Store) PutRunReport(ctx context.Context, report model.RunReport) error {
	checks, err := json.Marshal(report.Checks)
	if err != nil {
		return fmt.Errorf("marshal checks: %w", err)
	}
	startedAt, err := time.Parse(time.RFC3339Nano, report.StartedAt)
	if err != nil {
		return fmt.Errorf("parse started_at: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO fixture_runs (
			chain_id, deployer, token, token_tx, oracle, checks, passed, error, started_at, duration_ms
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		int64(report.ChainID),
		report.Deployer,
		report.Token,
		report.TokenTx,
		report.Oracle,
		checks,
		report.Passed(),
		report.Error,
		startedAt,
		report.DurationMS,
	)
	return err
}

func scanDeployment(row pgx.Row) (model.Deployment, error) {
	var (
		chainID    int64
		deployment model.Deployment
		deployedAt time.Time
	)
	if err := row.Scan(&chainID, &deployment.Contract, &deployment.Address, &deployment.TxHash, &deployedAt); err != nil {
		return model.Deployment{}, err
	}
	deployment.ChainID = uint64(chainID)
	deployment.DeployedAt = deployedAt.UTC().Format(time.RFC3339Nano)
	return deployment, nil
}
