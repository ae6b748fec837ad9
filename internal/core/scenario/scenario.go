// Package scenario runs the allocation solver across a set of capacity
// scenarios and builds cross-scenario comparison summaries.
package scenario

import (
	"context"
	"strconv"
	"sync"
	"time"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	"lineload/internal/core/solver"
	perr "lineload/internal/platform/errors"
)

// Scenario pairs a display label with the capacity matrix to solve under
type Scenario struct {
	Label    string
	Capacity capacity.Matrix
}

// FromScales builds one scenario per capacity fraction, labelled by
// percentage ("100%", "90%", ...)
func FromScales(base capacity.Matrix, fractions []float64) ([]Scenario, error) {
	if len(fractions) == 0 {
		return nil, perr.InvalidCapacityf("no capacity fractions given")
	}
	out := make([]Scenario, 0, len(fractions))
	for _, f := range fractions {
		m, err := base.Scale(f)
		if err != nil {
			return nil, err
		}
		label := strconv.Itoa(int(f*100+0.5)) + "%"
		out = append(out, Scenario{Label: label, Capacity: m})
	}
	return out, nil
}

// FromPatterns builds one scenario per work pattern, labelled by the
// pattern name
func FromPatterns(patterns []capacity.WorkPattern, in capacity.PatternInput) ([]Scenario, error) {
	if len(patterns) == 0 {
		return nil, perr.InvalidCapacityf("no work patterns given")
	}
	out := make([]Scenario, 0, len(patterns))
	for _, p := range patterns {
		m, err := capacity.DerivePattern(p, in)
		if err != nil {
			return nil, err
		}
		out = append(out, Scenario{Label: p.Name, Capacity: m})
	}
	return out, nil
}

// Outcome is one scenario's solve result. Result is nil when Err is set;
// a failed scenario never carries a partial result.
type Outcome struct {
	Scenario Scenario
	Result   *solver.Result
	Err      error
}

// Status reports the outcome's solver status, SOLVE_ERROR on failure
func (o Outcome) Status() solver.Status {
	if o.Err != nil {
		return solver.StatusError
	}
	return o.Result.Status
}

// Options tunes a scenario batch
type Options struct {
	// Timeout bounds each scenario's solve; zero means no per-scenario
	// deadline beyond the caller's context
	Timeout time.Duration
	// Parallelism caps concurrent solves; zero or negative means 4
	Parallelism int
}

const defaultParallelism = 4

// Run validates once, then solves every scenario. Input validation
// failure aborts the whole batch; a solve failure is recorded in its
// outcome and the remaining scenarios still run. Outcomes preserve
// scenario order.
func Run(ctx context.Context, parts []plan.Part, scenarios []Scenario, opts Options) ([]Outcome, error) {
	if err := plan.Validate(parts); err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, perr.InvalidCapacityf("no scenarios to run")
	}

	workers := opts.Parallelism
	if workers <= 0 {
		workers = defaultParallelism
	}

	outcomes := make([]Outcome, len(scenarios))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, sc := range scenarios {
		wg.Add(1)
		go func(i int, sc Scenario) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			runCtx := ctx
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
				defer cancel()
			}

			res, err := solver.Solve(runCtx, parts, sc.Capacity)
			if err != nil {
				outcomes[i] = Outcome{Scenario: sc, Err: perr.Wrapf(err, perr.CodeOf(err), "scenario %s", sc.Label)}
				return
			}
			outcomes[i] = Outcome{Scenario: sc, Result: res}
		}(i, sc)
	}
	wg.Wait()

	return outcomes, nil
}
