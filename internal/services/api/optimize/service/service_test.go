package service

import (
	"context"
	"testing"

	"lineload/internal/core/plan"
	perr "lineload/internal/platform/errors"
	"lineload/internal/platform/testkit"

	"lineload/internal/services/api/optimize/domain"
)

func demand12(v float64) []float64 {
	out := make([]float64, plan.MonthCount)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestTypedPartsNormalizesAndAggregates(t *testing.T) {
	parts, err := typedParts([]domain.PartInput{
		{PartNumber: "a-1", MainLine: "M4915", Sub1Line: "919", MonthlyDemand: demand12(10)},
		{PartNumber: "A1", MainLine: "4927", MonthlyDemand: demand12(5)},
	})
	if err != nil {
		t.Fatalf("typedParts: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1 after aggregation", len(parts))
	}
	p := parts[0]
	if p.Number != "A1" {
		t.Fatalf("number = %s", p.Number)
	}
	if len(p.Lines) != 2 || p.Lines[0] != "4915" || p.Lines[1] != "4919" {
		t.Fatalf("lines = %v", p.Lines)
	}
	if p.Demand[0] != 15 {
		t.Fatalf("demand = %v, want 15", p.Demand[0])
	}
}

func TestTypedPartsRejectsEmptyNumber(t *testing.T) {
	_, err := typedParts([]domain.PartInput{{PartNumber: " - ", MainLine: "4915", MonthlyDemand: demand12(1)}})
	if !perr.IsCode(err, perr.ErrorCodeInvalidDemand) {
		t.Fatalf("code = %v, want invalid demand", perr.CodeOf(err))
	}
}

func TestOptimizeUsesDefaultCapacities(t *testing.T) {
	svc := New(nil)
	resp, err := svc.Optimize(context.Background(), domain.OptimizeRequest{
		Parts: []domain.PartInput{
			{PartNumber: "D1", MainLine: "4915", MonthlyDemand: demand12(1000)},
		},
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if resp.Scenario.Status != "OPTIMAL" || resp.Scenario.TotalUnmet != 0 {
		t.Fatalf("scenario = %+v", resp.Scenario)
	}
	// default 4915 capacity is 70000/month, so the whole demand lands there
	testkit.CloseEnough(t, resp.Scenario.TotalAllocated, 12000, 1e-6, "allocated")
}

func TestComparePatternsDefaults(t *testing.T) {
	svc := New(nil)
	resp, err := svc.ComparePatterns(context.Background(), domain.PatternsRequest{
		Parts: []domain.PartInput{
			{PartNumber: "E1", MainLine: "4915", MonthlyDemand: demand12(100)},
		},
	})
	if err != nil {
		t.Fatalf("compare patterns: %v", err)
	}
	if len(resp.Scenarios) != 2 {
		t.Fatalf("got %d scenarios, want the two default patterns", len(resp.Scenarios))
	}
	if resp.Comparison.Labels[0] != "2直2交替" || resp.Comparison.Labels[1] != "3直3交替" {
		t.Fatalf("labels = %v", resp.Comparison.Labels)
	}
	for _, sc := range resp.Scenarios {
		if sc.Status != "OPTIMAL" {
			t.Fatalf("scenario %s status = %s (%s)", sc.Label, sc.Status, sc.Error)
		}
	}
}

func TestCapsFromMapBackfillsMissingLines(t *testing.T) {
	m, err := capsFromMap(map[string][]float64{"4915": {80}})
	if err != nil {
		t.Fatalf("capsFromMap: %v", err)
	}
	if m.Get("4915", 0) != 80 || m.Get("4915", 11) != 80 {
		t.Fatalf("explicit 4915 row = %v / %v", m.Get("4915", 0), m.Get("4915", 11))
	}
	// known lines absent from a partial map keep their defaults
	if m.Get("4919", 0) != 80000 {
		t.Fatalf("4919 fallback = %v", m.Get("4919", 0))
	}
	if m.Get("4J01", 5) != 10000 {
		t.Fatalf("4J01 fallback = %v", m.Get("4J01", 5))
	}
}

func TestCapsFromTableFallsBackToDefaults(t *testing.T) {
	m, err := capsFromTable(nil)
	if err != nil {
		t.Fatalf("capsFromTable: %v", err)
	}
	if m.Get("4915", 0) != 70000 {
		t.Fatalf("default 4915 capacity = %v", m.Get("4915", 0))
	}

	m, err = capsFromTable([][]any{
		{"4915", 1234},
		{"not-a-line", 999},
	})
	if err != nil {
		t.Fatalf("capsFromTable: %v", err)
	}
	if m.Get("4915", 11) != 1234 {
		t.Fatalf("explicit row ignored: %v", m.Get("4915", 11))
	}
	// lines missing from the table still carry their defaults
	if m.Get("4919", 0) != 80000 {
		t.Fatalf("4919 fallback = %v", m.Get("4919", 0))
	}
}
