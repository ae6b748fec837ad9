// Package xlsx reads optimizer input workbooks and writes template and
// result workbooks
package xlsx

import (
	"github.com/xuri/excelize/v2"

	"lineload/internal/core/plan"
)

// workbook sheet names
const (
	SheetParts      = "Parts"
	SheetCapacities = "Capacities"
	SheetSettings   = "Settings"

	SheetSummary     = "Summary"
	SheetLineLoads   = "LineLoads"
	SheetAllocations = "Allocations"
	SheetUnmet       = "Unmet"
	SheetCapacity    = "CapacityMatrix"
)

// load rate at or above this paints the warning fill
const warnLoadRate = 0.95

type styles struct {
	header  int
	warning int
	label   int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return styles{}, err
	}
	warning, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
	})
	if err != nil {
		return styles{}, err
	}
	label, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E2F3"}},
	})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, warning: warning, label: label}, nil
}

func partsHeader() []any {
	row := []any{"Part", "Main", "Sub1", "Sub2"}
	for _, m := range plan.MonthLabels {
		row = append(row, m)
	}
	return row
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
