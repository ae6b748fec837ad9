package capacity

import (
	"testing"

	"lineload/internal/core/plan"
	perr "lineload/internal/platform/errors"
	"lineload/internal/platform/testkit"
)

func TestDeriveDirectPadsShortRows(t *testing.T) {
	m, err := DeriveDirect([]Row{
		{Line: "4915", Monthly: []float64{100, 200, 300}},
		{Line: "4919", Monthly: []float64{500}},
	})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	got := m["4915"]
	if got[0] != 100 || got[1] != 200 || got[2] != 300 {
		t.Fatalf("leading months wrong: %v", got[:3])
	}
	for i := 3; i < plan.MonthCount; i++ {
		if got[i] != 300 {
			t.Fatalf("month %d = %v, want padding value 300", i, got[i])
		}
	}
	for i := 0; i < plan.MonthCount; i++ {
		if m["4919"][i] != 500 {
			t.Fatalf("single-value row should apply to all months, month %d = %v", i, m["4919"][i])
		}
	}
}

func TestDeriveDirectRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		rows []Row
	}{
		{"negative", []Row{{Line: "4915", Monthly: []float64{100, -1}}}},
		{"empty line", []Row{{Line: "", Monthly: []float64{100}}}},
		{"no values", []Row{{Line: "4915"}}},
		{"too many values", []Row{{Line: "4915", Monthly: make([]float64, 13)}}},
	}
	for _, c := range cases {
		_, err := DeriveDirect(c.rows)
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		if !perr.IsCode(err, perr.ErrorCodeInvalidCapacity) {
			t.Fatalf("%s: code = %v, want invalid capacity", c.name, perr.CodeOf(err))
		}
	}
}

func TestDerivePattern(t *testing.T) {
	in := PatternInput{
		Lines: []plan.LineID{"4915", "4919"},
		JPH:   map[plan.LineID]float64{"4915": 350, "4919": 400},
	}
	for i := range in.WorkingDays {
		in.WorkingDays[i] = 20
	}

	m, err := DerivePattern(DefaultWorkPatterns[0], in)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	// 20 days * 7.5h * 2 shifts - 5 exclusion = 295 hours
	testkit.CloseEnough(t, m.Get("4915", 0), 350*295, 1e-9, "4915 capacity")
	testkit.CloseEnough(t, m.Get("4919", 5), 400*295, 1e-9, "4919 capacity")
}

func TestDerivePatternClampsNegativeHours(t *testing.T) {
	p := WorkPattern{Name: "tiny", Formula: "{days} - {excl}", ExclusionHours: 50}
	in := PatternInput{Lines: []plan.LineID{"4915"}, JPH: map[plan.LineID]float64{"4915": 100}}
	for i := range in.WorkingDays {
		in.WorkingDays[i] = 20
	}
	m, err := DerivePattern(p, in)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if m.Get("4915", 0) != 0 {
		t.Fatalf("negative hours should clamp capacity to zero, got %v", m.Get("4915", 0))
	}
}

func TestDerivePatternMissingRate(t *testing.T) {
	in := PatternInput{Lines: []plan.LineID{"4915", "4J01"}, JPH: map[plan.LineID]float64{"4915": 350}}
	_, err := DerivePattern(DefaultWorkPatterns[0], in)
	if err == nil {
		t.Fatal("expected error for missing JPH rate")
	}
	if !perr.IsCode(err, perr.ErrorCodeInvalidCapacity) {
		t.Fatalf("code = %v, want invalid capacity", perr.CodeOf(err))
	}
}

func TestDerivePatternBadFormula(t *testing.T) {
	p := WorkPattern{Name: "broken", Formula: "{shift} * 8"}
	in := PatternInput{Lines: []plan.LineID{"4915"}, JPH: map[plan.LineID]float64{"4915": 1}}
	_, err := DerivePattern(p, in)
	if !perr.IsCode(err, perr.ErrorCodeFormula) {
		t.Fatalf("code = %v, want formula", perr.CodeOf(err))
	}
}

func TestScaleFloorsIntegralCells(t *testing.T) {
	m := Matrix{"4915": monthsOf(1001), "4919": monthsOf(10.5)}

	scaled, err := m.Scale(0.9)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if got := scaled.Get("4915", 0); got != 900 {
		t.Fatalf("integral cell should floor: got %v, want 900", got)
	}
	testkit.CloseEnough(t, scaled.Get("4919", 0), 9.45, 1e-9, "fractional cell")

	if _, err := m.Scale(-0.1); err == nil {
		t.Fatal("negative scale should error")
	}
}

func TestDefaultsCoverAllLines(t *testing.T) {
	m := Defaults()
	for _, l := range plan.Lines {
		if m.Get(l, 0) <= 0 {
			t.Fatalf("line %s has no default capacity", l)
		}
		if m.Get(l, 0) != m.Get(l, 11) {
			t.Fatalf("defaults should be flat across the year for %s", l)
		}
	}
	if m.Get("0000", 3) != 0 {
		t.Fatal("unknown line should read zero")
	}
}

func monthsOf(v float64) [plan.MonthCount]float64 {
	var out [plan.MonthCount]float64
	for i := range out {
		out[i] = v
	}
	return out
}
