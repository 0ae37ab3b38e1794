package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadResolveDefaults(t *testing.T) {
	cfg, err := LoadResolve("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.InitialBalance != 1000 {
		t.Fatalf("expected default initial balance 1000, got %d", cfg.InitialBalance)
	}
	if cfg.Registry != "./data/deployments.json" || cfg.Out != "./data/fixture_runs.jsonl" {
		t.Fatalf("unexpected default paths: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level %s", cfg.LogLevel)
	}
}

func TestLoadMigrateFileEnvFlags(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "fixture.yaml")
	content := "rpc: http://file:8545\noracle-rate: 7\naccounts:\n  - aa\n  - bb\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FIXTURE_PG_DSN", "postgres://env")

	flags := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flags.String("rpc", "", "")
	flags.Bool("reset", false, "")
	if err := flags.Parse([]string{"--rpc", "http://flag:8545", "--reset"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := LoadMigrate(cfgFile, flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCURL != "http://flag:8545" {
		t.Fatalf("flag should win over file, got %s", cfg.RPCURL)
	}
	if cfg.OracleRate != 7 {
		t.Fatalf("expected oracle rate from file, got %d", cfg.OracleRate)
	}
	if !cfg.Reset {
		t.Fatalf("expected reset from flag")
	}
	if cfg.PGDSN != "postgres://env" {
		t.Fatalf("expected pg dsn from env, got %s", cfg.PGDSN)
	}
	if len(cfg.Accounts) != 2 || cfg.Accounts[0] != "aa" || cfg.Accounts[1] != "bb" {
		t.Fatalf("unexpected accounts: %v", cfg.Accounts)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := LoadNetworks(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestSplitAndClean(t *testing.T) {
	got := splitAndClean(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split: %v", got)
	}
	if splitAndClean("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
