package xlsx

import (
	"github.com/xuri/excelize/v2"

	"lineload/internal/core/plan"
	perr "lineload/internal/platform/errors"
)

// WriteTemplate creates an empty input workbook at path: a Parts sheet
// with one example row, a Capacities sheet prefilled with the default
// line capacities, and a Settings sheet with solve defaults.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st, err := newStyles(f)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "template styles")
	}

	if err := f.SetSheetName("Sheet1", SheetParts); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "rename sheet")
	}
	if err := setRow(f, SheetParts, 1, partsHeader()); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "parts header")
	}
	example := []any{"43512-XXX01", "4915", "4919", ""}
	for range plan.MonthLabels {
		example = append(example, 0)
	}
	if err := setRow(f, SheetParts, 2, example); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "parts example row")
	}
	_ = f.SetRowStyle(SheetParts, 1, 1, st.header)

	if _, err := f.NewSheet(SheetCapacities); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "capacities sheet")
	}
	capHeader := []any{"Line"}
	for _, m := range plan.MonthLabels {
		capHeader = append(capHeader, m)
	}
	if err := setRow(f, SheetCapacities, 1, capHeader); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "capacities header")
	}
	for i, line := range plan.Lines {
		row := []any{string(line)}
		for range plan.MonthLabels {
			row = append(row, plan.DefaultMonthlyCapacities[line])
		}
		if err := setRow(f, SheetCapacities, 2+i, row); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "capacity row %s", line)
		}
	}
	_ = f.SetRowStyle(SheetCapacities, 1, 1, st.header)

	if _, err := f.NewSheet(SheetSettings); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "settings sheet")
	}
	settings := [][]any{
		{"time_limit", 300},
		{"scales", "1.0, 0.9, 0.8"},
	}
	for i, row := range settings {
		if err := setRow(f, SheetSettings, 1+i, row); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "settings row")
		}
	}
	_ = f.SetColStyle(SheetSettings, "A", st.label)

	if err := f.SaveAs(path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "save template %s", path)
	}
	return nil
}
