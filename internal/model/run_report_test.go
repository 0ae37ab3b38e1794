package model

import "testing"

func TestRunReportPassed(t *testing.T) {
	report := RunReport{
		Checks: []CheckResult{
			{Name: "EURToken should be deployed", Passed: true},
			{Name: "Oracle should be deployed", Passed: true},
		},
	}
	if !report.Passed() {
		t.Fatalf("expected report to pass")
	}

	report.Checks[1].Passed = false
	if report.Passed() {
		t.Fatalf("expected failing check to fail the report")
	}

	failed := RunReport{Error: "oracle has not been deployed"}
	if failed.Passed() {
		t.Fatalf("expected resolution error to fail the report")
	}
}
