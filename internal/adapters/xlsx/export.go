package xlsx

import (
	"github.com/xuri/excelize/v2"

	"lineload/internal/core/plan"
	"lineload/internal/core/scenario"
	perr "lineload/internal/platform/errors"
)

// WriteResult exports a finished batch to a workbook: a Summary sheet
// over all scenarios, and per-line, per-part, unmet, and capacity sheets
// for the first successful scenario. Lines running at or above 95% load
// get the warning fill.
func WriteResult(path string, parts []plan.Part, outcomes []scenario.Outcome) error {
	if len(outcomes) == 0 {
		return perr.Solvef("no outcomes to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st, err := newStyles(f)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "export styles")
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "rename sheet")
	}
	if err := writeSummary(f, st, parts, outcomes); err != nil {
		return err
	}

	primary := firstSuccess(outcomes)
	if primary != nil {
		if err := writeLineLoads(f, st, *primary); err != nil {
			return err
		}
		if err := writeAllocations(f, st, parts, *primary); err != nil {
			return err
		}
		if err := writeUnmet(f, st, parts, *primary); err != nil {
			return err
		}
		if err := writeCapacity(f, st, *primary); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "save result %s", path)
	}
	return nil
}

func firstSuccess(outcomes []scenario.Outcome) *scenario.Outcome {
	for i := range outcomes {
		if outcomes[i].Err == nil {
			return &outcomes[i]
		}
	}
	return nil
}

func writeSummary(f *excelize.File, st styles, parts []plan.Part, outcomes []scenario.Outcome) error {
	c := scenario.Compare(parts, outcomes)

	header := []any{"Scenario", "Status", "Total Demand", "Total Unmet", "Load Rate", "Error"}
	if err := setRow(f, SheetSummary, 1, header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "summary header")
	}
	_ = f.SetRowStyle(SheetSummary, 1, 1, st.header)

	for i, row := range c.Summary {
		values := []any{row.Label, string(row.Status), row.TotalDemand, row.TotalUnmet, row.LoadRate, row.Error}
		if err := setRow(f, SheetSummary, 2+i, values); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "summary row %s", row.Label)
		}
		if row.TotalUnmet > 0 || row.Error != "" {
			cell, _ := excelize.CoordinatesToCellName(4, 2+i)
			_ = f.SetCellStyle(SheetSummary, cell, cell, st.warning)
		}
	}
	return nil
}

func writeLineLoads(f *excelize.File, st styles, o scenario.Outcome) error {
	if _, err := f.NewSheet(SheetLineLoads); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "line loads sheet")
	}
	header := []any{"Line", "Metric"}
	for _, m := range plan.MonthLabels {
		header = append(header, m)
	}
	header = append(header, "Avg")
	if err := setRow(f, SheetLineLoads, 1, header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "line loads header")
	}
	_ = f.SetRowStyle(SheetLineLoads, 1, 1, st.header)

	rowIdx := 2
	for _, line := range o.Scenario.Capacity.Lines() {
		loads := o.Result.LineLoads[line]

		capRow := []any{string(line), "capacity"}
		loadRow := []any{"", "load"}
		rateRow := []any{"", "rate"}
		var capSum, loadSum float64
		for m := 0; m < plan.MonthCount; m++ {
			c := o.Scenario.Capacity.Get(line, m)
			capRow = append(capRow, c)
			loadRow = append(loadRow, loads[m])
			rate := 0.0
			if c > 0 {
				rate = loads[m] / c
			}
			rateRow = append(rateRow, rate)
			capSum += c
			loadSum += loads[m]
		}
		capRow = append(capRow, capSum/plan.MonthCount)
		loadRow = append(loadRow, loadSum/plan.MonthCount)
		avgRate := 0.0
		if capSum > 0 {
			avgRate = loadSum / capSum
		}
		rateRow = append(rateRow, avgRate)

		for _, row := range [][]any{capRow, loadRow, rateRow} {
			if err := setRow(f, SheetLineLoads, rowIdx, row); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnknown, "line loads row %s", line)
			}
			rowIdx++
		}

		// flag hot months on the rate row
		for m := 0; m < plan.MonthCount; m++ {
			if c := o.Scenario.Capacity.Get(line, m); c > 0 && loads[m]/c >= warnLoadRate {
				cell, _ := excelize.CoordinatesToCellName(3+m, rowIdx-1)
				_ = f.SetCellStyle(SheetLineLoads, cell, cell, st.warning)
			}
		}
		firstCell, _ := excelize.CoordinatesToCellName(1, rowIdx-3)
		_ = f.SetCellStyle(SheetLineLoads, firstCell, firstCell, st.label)
	}
	return nil
}

func writeAllocations(f *excelize.File, st styles, parts []plan.Part, o scenario.Outcome) error {
	if _, err := f.NewSheet(SheetAllocations); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "allocations sheet")
	}
	header := []any{"Part", "Main", "Line"}
	for _, m := range plan.MonthLabels {
		header = append(header, m)
	}
	header = append(header, "Total")
	if err := setRow(f, SheetAllocations, 1, header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "allocations header")
	}
	_ = f.SetRowStyle(SheetAllocations, 1, 1, st.header)

	rowIdx := 2
	for _, p := range parts {
		for _, line := range p.Lines {
			months, ok := o.Result.Allocation[p.Number][line]
			if !ok {
				continue
			}
			row := []any{string(p.Number), string(p.MainLine()), string(line)}
			var total float64
			for _, q := range months {
				row = append(row, q)
				total += q
			}
			if total == 0 {
				continue
			}
			row = append(row, total)
			if err := setRow(f, SheetAllocations, rowIdx, row); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnknown, "allocation row %s", p.Number)
			}
			if line != p.MainLine() {
				cell, _ := excelize.CoordinatesToCellName(3, rowIdx)
				_ = f.SetCellStyle(SheetAllocations, cell, cell, st.label)
			}
			rowIdx++
		}
	}
	return nil
}

func writeUnmet(f *excelize.File, st styles, parts []plan.Part, o scenario.Outcome) error {
	if _, err := f.NewSheet(SheetUnmet); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "unmet sheet")
	}
	header := []any{"Part", "Main"}
	for _, m := range plan.MonthLabels {
		header = append(header, m)
	}
	header = append(header, "Total")
	if err := setRow(f, SheetUnmet, 1, header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "unmet header")
	}
	_ = f.SetRowStyle(SheetUnmet, 1, 1, st.header)

	rowIdx := 2
	for _, p := range parts {
		months, ok := o.Result.Unmet[p.Number]
		if !ok {
			continue
		}
		row := []any{string(p.Number), string(p.MainLine())}
		var total float64
		for _, q := range months {
			row = append(row, q)
			total += q
		}
		row = append(row, total)
		if err := setRow(f, SheetUnmet, rowIdx, row); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "unmet row %s", p.Number)
		}
		cell, _ := excelize.CoordinatesToCellName(len(row), rowIdx)
		_ = f.SetCellStyle(SheetUnmet, cell, cell, st.warning)
		rowIdx++
	}
	return nil
}

func writeCapacity(f *excelize.File, st styles, o scenario.Outcome) error {
	if _, err := f.NewSheet(SheetCapacity); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "capacity sheet")
	}
	header := []any{"Line"}
	for _, m := range plan.MonthLabels {
		header = append(header, m)
	}
	if err := setRow(f, SheetCapacity, 1, header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "capacity header")
	}
	_ = f.SetRowStyle(SheetCapacity, 1, 1, st.header)

	for i, line := range o.Scenario.Capacity.Lines() {
		row := []any{string(line)}
		for m := 0; m < plan.MonthCount; m++ {
			row = append(row, o.Scenario.Capacity.Get(line, m))
		}
		if err := setRow(f, SheetCapacity, 2+i, row); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "capacity row %s", line)
		}
	}
	return nil
}
