package doctor

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages health checkers.
type Registry struct {
	mu       sync.RWMutex
	checkers []HealthChecker
}

// NewRegistry creates a new Registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds checkers in display order.
func (r *Registry) Register(checkers ...HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checkers = append(r.checkers, checkers...)
}

// RunAll executes all registered health checkers concurrently. Results keep
// registration order and carry the checker's category.
func (r *Registry) RunAll(ctx context.Context) []CheckResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]CheckResult, len(r.checkers))
	g, gctx := errgroup.WithContext(ctx)

	for i, checker := range r.checkers {
		g.Go(func() error {
			result := checker.Check(gctx)
			result.Category = checker.Category()

			if result.Name == "" {
				result.Name = checker.Name()
			}

			results[i] = result

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// CheckerCount returns the total number of registered checkers
func (r *Registry) CheckerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.checkers)
}

// HasErrors reports whether any check failed.
func HasErrors(results []CheckResult) bool {
	return slices.ContainsFunc(results, CheckResult.Failed)
}
