package xlsx

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	perr "lineload/internal/platform/errors"
)

// Input is everything a batch run needs from a workbook
type Input struct {
	Parts            []plan.Part
	Capacity         capacity.Matrix
	TimeLimitSeconds int
	Scales           []float64
}

// ReadInput loads a workbook written from the template. A missing
// Capacities sheet falls back to the default matrix; a missing Settings
// sheet leaves the zero values for the caller to default.
func ReadInput(path string) (*Input, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidDemand, "open workbook %s", path)
	}
	defer func() { _ = f.Close() }()

	in := &Input{}

	rows, err := f.GetRows(SheetParts)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidDemand, "read %s sheet", SheetParts)
	}
	in.Parts = plan.PartsFromTable(anyRows(rows))
	if len(in.Parts) == 0 {
		return nil, perr.InvalidDemandf("workbook %s has no usable part rows", path)
	}

	in.Capacity, err = readCapacities(f)
	if err != nil {
		return nil, err
	}

	readSettings(f, in)
	return in, nil
}

func readCapacities(f *excelize.File) (capacity.Matrix, error) {
	rows, err := f.GetRows(SheetCapacities)
	if err != nil {
		// sheet may be absent; defaults apply
		return capacity.Defaults(), nil
	}

	var direct []capacity.Row
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		line := plan.NormalizeLineID(row[0])
		if line == "" || !plan.KnownLine(line) {
			continue
		}
		var monthly []float64
		for _, cell := range row[1:] {
			if strings.TrimSpace(cell) == "" {
				break
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				return nil, perr.InvalidCapacityf("line %s has unparseable capacity cell %q", line, cell)
			}
			monthly = append(monthly, v)
		}
		if len(monthly) > plan.MonthCount {
			monthly = monthly[:plan.MonthCount]
		}
		if len(monthly) > 0 {
			direct = append(direct, capacity.Row{Line: line, Monthly: monthly})
		}
	}
	if len(direct) == 0 {
		return capacity.Defaults(), nil
	}
	return capacity.DeriveDirect(direct)
}

func readSettings(f *excelize.File, in *Input) {
	rows, err := f.GetRows(SheetSettings)
	if err != nil {
		return
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		val := strings.TrimSpace(row[1])
		switch key {
		case "time_limit":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				in.TimeLimitSeconds = n
			}
		case "scales":
			for _, part := range strings.Split(val, ",") {
				if s, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil && s > 0 {
					in.Scales = append(in.Scales, s)
				}
			}
		}
	}
}

// anyRows widens string rows to untyped cells, padding each row to the
// parts-table width. GetRows trims trailing blank cells, so a part row
// with its later demand months left empty would otherwise come back
// short and be dropped; blank demand cells read as zero.
func anyRows(rows [][]string) [][]any {
	width := 4 + plan.MonthCount
	out := make([][]any, len(rows))
	for i, row := range rows {
		n := len(row)
		if n < width {
			n = width
		}
		cells := make([]any, n)
		for j := range cells {
			if j < len(row) {
				cells[j] = row[j]
			} else {
				cells[j] = ""
			}
		}
		out[i] = cells
	}
	return out
}
