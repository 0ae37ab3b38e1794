// Package fixturetest registers fixture assertions with the go test runner.
package fixturetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eurTokenOracle/internal/chain"
	"eurTokenOracle/internal/fixture"
)

// Resolve runs the fixture and stops the test if resolution fails. No
// assertions are registered in that case.
func Resolve(t *testing.T, resolver *fixture.Resolver, accounts []chain.Account) *fixture.Result {
	t.Helper()

	res, err := resolver.Resolve(context.Background(), accounts)
	require.NoError(t, err, "resolve fixture")
	return res
}

// Register adds one subtest per fixture check so each outcome is reported
// separately. It returns res unchanged for the caller's own steps.
func Register(t *testing.T, res *fixture.Result) *fixture.Result {
	t.Helper()

	for _, check := range fixture.Checks(res) {
		check := check
		t.Run(check.Name, func(t *testing.T) {
			assert.True(t, check.Passed, check.Message)
		})
	}
	return res
}
