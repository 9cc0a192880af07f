// Package doctor provides setup diagnostics for compilerlint.
package doctor

import "context"

// Status is the outcome of a health check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn" // usable but degraded
	StatusFail Status = "fail" // linting cannot work
	StatusSkip Status = "skip"
)

// Category groups health checks in reports.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryAnalyzer Category = "analyzer"
)

// CheckResult is the outcome of one health check.
type CheckResult struct {
	Name     string
	Category Category
	Status   Status
	Message  string
	Details  []string
}

// HealthChecker performs one health check.
type HealthChecker interface {
	Name() string
	Category() Category
	Check(ctx context.Context) CheckResult
}

// Pass returns a passing result.
func Pass(name, message string, details ...string) CheckResult {
	return CheckResult{Name: name, Status: StatusPass, Message: message, Details: details}
}

// Warn returns a result for a problem that does not prevent linting.
func Warn(name, message string, details ...string) CheckResult {
	return CheckResult{Name: name, Status: StatusWarn, Message: message, Details: details}
}

// Fail returns a result for a problem that prevents linting.
func Fail(name, message string, details ...string) CheckResult {
	return CheckResult{Name: name, Status: StatusFail, Message: message, Details: details}
}

// Skip returns a result for a check that did not apply.
func Skip(name, message string) CheckResult {
	return CheckResult{Name: name, Status: StatusSkip, Message: message}
}

func (r CheckResult) Passed() bool { return r.Status == StatusPass }
func (r CheckResult) Warned() bool { return r.Status == StatusWarn }
func (r CheckResult) Failed() bool { return r.Status == StatusFail }
