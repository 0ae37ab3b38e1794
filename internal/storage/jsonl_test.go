package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"eurTokenOracle/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "runs.jsonl")
	sink := Multi{NewJsonlStorage(path)}

	reports := []model.RunReport{
		{ChainID: 1337, Token: "0xaaaa", Oracle: "0xbbbb", Checks: []model.CheckResult{{Name: "EURToken should be deployed", Passed: true}}},
		{ChainID: 1337, Error: "Oracle has not been deployed to detected network"},
	}
	for _, report := range reports {
		if err := sink.PutRunReport(context.Background(), report); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var lines []model.RunReport
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var report model.RunReport
		if err := json.Unmarshal(scanner.Bytes(), &report); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		lines = append(lines, report)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Token != "0xaaaa" || !lines[0].Passed() {
		t.Fatalf("unexpected first report: %+v", lines[0])
	}
	if lines[1].Passed() {
		t.Fatalf("second report should not pass")
	}
}
