package fixture

// Check is one named assertion over a Result.
type Check struct {
	Name    string
	Message string
	Passed  bool
}

// Checks evaluates the deployment assertions for res. Each check is
// reported on its own so one failure does not hide the other.
func Checks(res *Result) []Check {
	var token, oracle bool
	if res != nil {
		token = res.TokenInstance != nil
		oracle = res.OracleInstance != nil
	}
	return []Check{
		{Name: TokenName + " should be deployed", Message: TokenName + " is deployed", Passed: token},
		{Name: OracleName + " should be deployed", Message: OracleName + " is deployed", Passed: oracle},
	}
}

// AllPassed reports whether every check passed.
func AllPassed(checks []Check) bool {
	for _, check := range checks {
		if !check.Passed {
			return false
		}
	}
	return true
}
