package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	"lineload/internal/core/scenario"
	"lineload/internal/platform/testkit"
)

func TestTemplateRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.xlsx")

	if err := WriteTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}

	// fill the template the way a user would
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	row := []any{"43512-ABC01", "4915", "4919", ""}
	for range plan.MonthLabels {
		row = append(row, 100)
	}
	if err := setRow(f, SheetParts, 2, row); err != nil {
		t.Fatalf("fill row: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	in, err := ReadInput(path)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if len(in.Parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(in.Parts))
	}
	p := in.Parts[0]
	if p.Number != "43512ABC01" || len(p.Lines) != 2 {
		t.Fatalf("part = %+v", p)
	}
	if p.Demand[0] != 100 || p.Demand[11] != 100 {
		t.Fatalf("demand = %v", p.Demand)
	}

	// template prefills the default capacities
	if in.Capacity.Get("4915", 0) != 70000 {
		t.Fatalf("capacity 4915 = %v", in.Capacity.Get("4915", 0))
	}
	if in.TimeLimitSeconds != 300 {
		t.Fatalf("time limit = %d, want 300", in.TimeLimitSeconds)
	}
	want := []float64{1.0, 0.9, 0.8}
	if len(in.Scales) != len(want) {
		t.Fatalf("scales = %v", in.Scales)
	}
	for i := range want {
		testkit.CloseEnough(t, in.Scales[i], want[i], 1e-9, "scale")
	}
}

func TestReadInputPadsTrailingBlankMonths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.xlsx")
	if err := WriteTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}

	// only April filled in; GetRows trims the trailing blank cells so
	// the row comes back shorter than the full table width
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	if err := setRow(f, SheetParts, 2, []any{"P1", "4915", "", "", 100}); err != nil {
		t.Fatalf("fill row: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	in, err := ReadInput(path)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if len(in.Parts) != 1 || in.Parts[0].Number != "P1" {
		t.Fatalf("parts = %+v", in.Parts)
	}
	if in.Parts[0].Demand[0] != 100 {
		t.Fatalf("april demand = %v", in.Parts[0].Demand[0])
	}
	for m := 1; m < plan.MonthCount; m++ {
		if in.Parts[0].Demand[m] != 0 {
			t.Fatalf("month %d demand = %v, want 0 for blank cell", m, in.Parts[0].Demand[m])
		}
	}
}

func TestReadInputRejectsEmptyWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")
	if err := WriteTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}
	// template's example row has zero demand, so nothing survives parsing
	if _, err := ReadInput(path); err == nil {
		t.Fatal("expected error for workbook with no demand")
	}
}

func TestWriteResult(t *testing.T) {
	parts := []plan.Part{{Number: "P1", Lines: []plan.LineID{"4915"}}}
	for m := range parts[0].Demand {
		parts[0].Demand[m] = 100
	}
	var months [plan.MonthCount]float64
	for i := range months {
		months[i] = 80
	}
	base := scenario.Scenario{Label: "100%", Capacity: capacity.Matrix{"4915": months}}

	outcomes, err := scenario.Run(context.Background(), parts, []scenario.Scenario{base}, scenario.Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "result.xlsx")
	if err := WriteResult(path, parts, outcomes); err != nil {
		t.Fatalf("write result: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	defer func() { _ = f.Close() }()

	for _, sheet := range []string{SheetSummary, SheetLineLoads, SheetAllocations, SheetUnmet, SheetCapacity} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("missing sheet %s", sheet)
		}
	}

	rows, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("summary rows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "100%" || rows[1][1] != "OPTIMAL" {
		t.Fatalf("summary = %v", rows)
	}

	unmet, err := f.GetRows(SheetUnmet)
	if err != nil {
		t.Fatalf("unmet rows: %v", err)
	}
	if len(unmet) != 2 || unmet[1][0] != "P1" {
		t.Fatalf("unmet = %v", unmet)
	}
}
