package scenario

import (
	"context"
	"testing"
	"time"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	"lineload/internal/core/solver"
	perr "lineload/internal/platform/errors"
	"lineload/internal/platform/testkit"
)

func flatDemand(v float64) [plan.MonthCount]float64 {
	var d [plan.MonthCount]float64
	for i := range d {
		d[i] = v
	}
	return d
}

func flatCapacity(lines map[plan.LineID]float64) capacity.Matrix {
	m := make(capacity.Matrix, len(lines))
	for l, v := range lines {
		var months [plan.MonthCount]float64
		for i := range months {
			months[i] = v
		}
		m[l] = months
	}
	return m
}

func TestFromScalesLabels(t *testing.T) {
	base := flatCapacity(map[plan.LineID]float64{"A": 1000})
	scenarios, err := FromScales(base, []float64{1.0, 0.9, 0.8})
	if err != nil {
		t.Fatalf("from scales: %v", err)
	}
	want := []string{"100%", "90%", "80%"}
	for i, sc := range scenarios {
		if sc.Label != want[i] {
			t.Fatalf("label[%d] = %q, want %q", i, sc.Label, want[i])
		}
	}
	if got := scenarios[1].Capacity.Get("A", 0); got != 900 {
		t.Fatalf("90%% capacity = %v, want 900", got)
	}
}

func TestFromPatternsLabels(t *testing.T) {
	in := capacity.PatternInput{
		Lines:       []plan.LineID{"A"},
		JPH:         map[plan.LineID]float64{"A": 100},
		WorkingDays: flatDemand(20),
	}
	scenarios, err := FromPatterns(capacity.DefaultWorkPatterns, in)
	if err != nil {
		t.Fatalf("from patterns: %v", err)
	}
	if len(scenarios) != 2 || scenarios[0].Label != "2直2交替" {
		t.Fatalf("unexpected scenarios: %+v", scenarios)
	}
	// 20 * 7.5 * 2 - 5 = 295 hours at 100/hour
	testkit.CloseEnough(t, scenarios[0].Capacity.Get("A", 0), 29500, 1e-9, "pattern capacity")
}

func TestRunScaleComparison(t *testing.T) {
	parts := []plan.Part{{Number: "P1", Lines: []plan.LineID{"A"}, Demand: flatDemand(950)}}
	base := flatCapacity(map[plan.LineID]float64{"A": 1000})
	scenarios, err := FromScales(base, []float64{1.0, 0.9})
	if err != nil {
		t.Fatalf("from scales: %v", err)
	}

	outcomes, err := Run(context.Background(), parts, scenarios, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes", len(outcomes))
	}
	if outcomes[0].Result.TotalUnmet() != 0 {
		t.Fatalf("100%% unmet = %v, want 0", outcomes[0].Result.TotalUnmet())
	}
	testkit.CloseEnough(t, outcomes[1].Result.TotalUnmet(), 50*plan.MonthCount, 1e-6, "90% unmet")

	c := Compare(parts, outcomes)
	if c.Summary[0].Status != solver.StatusOptimal || c.Summary[1].Status != solver.StatusOptimal {
		t.Fatalf("statuses: %+v", c.Summary)
	}
	if len(c.NewlyUnmet[0]) != 0 {
		t.Fatal("baseline scenario cannot have newly-unmet parts")
	}
	if len(c.NewlyUnmet[1]) != 1 || c.NewlyUnmet[1][0] != "P1" {
		t.Fatalf("newly unmet = %v, want [P1]", c.NewlyUnmet[1])
	}
	if len(c.Unmet) != 1 || c.Unmet[0].TotalUnmet[0] != 0 {
		t.Fatalf("unmet comparison = %+v", c.Unmet)
	}
}

func TestRunIsolatesScenarioFailure(t *testing.T) {
	parts := []plan.Part{{Number: "P1", Lines: []plan.LineID{"A"}, Demand: flatDemand(10)}}
	base := flatCapacity(map[plan.LineID]float64{"A": 100})

	// A 1ns budget kills every solve; the point is that Run still
	// returns an outcome per scenario instead of aborting.
	scenarios, _ := FromScales(base, []float64{1.0, 0.9})
	outcomes, err := Run(context.Background(), parts, scenarios, Options{Timeout: time.Nanosecond})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, o := range outcomes {
		if o.Err == nil {
			t.Fatalf("outcome %d unexpectedly succeeded", i)
		}
		if o.Status() != solver.StatusError {
			t.Fatalf("outcome %d status = %s", i, o.Status())
		}
		if !perr.IsCode(o.Err, perr.ErrorCodeSolve) {
			t.Fatalf("outcome %d code = %v", i, perr.CodeOf(o.Err))
		}
	}

	c := Compare(parts, outcomes)
	for _, row := range c.Summary {
		if row.Error == "" || row.TotalUnmet != 0 {
			t.Fatalf("failed row should carry error and zero metrics: %+v", row)
		}
	}
}

func TestRunRejectsBadInputBeforeSolving(t *testing.T) {
	scenarios := []Scenario{{Label: "100%", Capacity: flatCapacity(map[plan.LineID]float64{"A": 1})}}
	_, err := Run(context.Background(), []plan.Part{{Number: "P1"}}, scenarios, Options{})
	if !perr.IsCode(err, perr.ErrorCodeInvalidDemand) {
		t.Fatalf("code = %v, want invalid demand", perr.CodeOf(err))
	}
}

func TestCompareAlignsLineUniverse(t *testing.T) {
	parts := []plan.Part{{Number: "P1", Lines: []plan.LineID{"A"}, Demand: flatDemand(10)}}
	full := Scenario{Label: "full", Capacity: flatCapacity(map[plan.LineID]float64{"A": 100, "B": 100})}
	narrow := Scenario{Label: "narrow", Capacity: flatCapacity(map[plan.LineID]float64{"A": 100})}

	outcomes, err := Run(context.Background(), parts, []Scenario{full, narrow}, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	c := Compare(parts, outcomes)
	if len(c.Lines) != 2 {
		t.Fatalf("line universe = %d rows, want 2", len(c.Lines))
	}
	// line B exists only in the first scenario; the second still gets a zero column
	var b LineComparison
	for _, lc := range c.Lines {
		if lc.Line == "B" {
			b = lc
		}
	}
	if b.Line != "B" || b.AvgCapacity[0] != 100 || b.AvgCapacity[1] != 0 || b.AvgLoad[1] != 0 {
		t.Fatalf("line B comparison = %+v", b)
	}
}
