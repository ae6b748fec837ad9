package service

import (
	"sort"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	"lineload/internal/core/scenario"
	"lineload/internal/core/solver"
	perr "lineload/internal/platform/errors"

	"lineload/internal/services/api/optimize/domain"
)

// typedParts converts typed part inputs, normalizing identifiers and
// aggregating duplicate part numbers the same way the table path does
func typedParts(inputs []domain.PartInput) ([]plan.Part, error) {
	byNumber := map[plan.PartNumber]*plan.Part{}
	var order []plan.PartNumber

	for _, in := range inputs {
		num := plan.NormalizePartNumber(in.PartNumber)
		if num == "" {
			return nil, perr.InvalidDemandf("part number %q normalizes to empty", in.PartNumber)
		}

		var lines []plan.LineID
		for _, raw := range []string{in.MainLine, in.Sub1Line, in.Sub2Line} {
			if raw == "" {
				continue
			}
			l := plan.NormalizeLineID(raw)
			dup := false
			for _, seen := range lines {
				if seen == l {
					dup = true
					break
				}
			}
			if !dup {
				lines = append(lines, l)
			}
		}

		var demand [plan.MonthCount]float64
		copy(demand[:], in.MonthlyDemand)

		if existing, ok := byNumber[num]; ok {
			for m := range demand {
				existing.Demand[m] += demand[m]
			}
			continue
		}
		byNumber[num] = &plan.Part{Number: num, Name: in.PartName, Lines: lines, Demand: demand}
		order = append(order, num)
	}

	parts := make([]plan.Part, 0, len(order))
	for _, num := range order {
		parts = append(parts, *byNumber[num])
	}
	if err := plan.Validate(parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// capsFromMap builds a matrix from the typed capacity map, falling back
// to the built-in defaults when the map is empty. Known lines missing
// from a partial map keep their default capacity.
func capsFromMap(caps map[string][]float64) (capacity.Matrix, error) {
	if len(caps) == 0 {
		return capacity.Defaults(), nil
	}
	rows := make([]capacity.Row, 0, len(caps))
	for line, monthly := range caps {
		rows = append(rows, capacity.Row{Line: plan.NormalizeLineID(line), Monthly: monthly})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Line < rows[j].Line })
	m, err := capacity.DeriveDirect(rows)
	if err != nil {
		return nil, err
	}
	fillDefaultLines(m)
	return m, nil
}

// fillDefaultLines backfills known lines absent from a partial matrix
// with their default capacity so parts routed there are not starved
func fillDefaultLines(m capacity.Matrix) {
	for _, l := range plan.Lines {
		if _, ok := m[l]; !ok {
			var months [plan.MonthCount]float64
			for i := range months {
				months[i] = plan.DefaultMonthlyCapacities[l]
			}
			m[l] = months
		}
	}
}

// capsFromTable builds a matrix from spreadsheet capacity rows of the
// form [line, value] or [line, value x12]; unknown lines are skipped and
// a missing table falls back to the defaults
func capsFromTable(rows [][]any) (capacity.Matrix, error) {
	if len(rows) == 0 {
		return capacity.Defaults(), nil
	}
	var direct []capacity.Row
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		line := plan.NormalizeLineID(plan.CellString(row[0]))
		if line == "" || !plan.KnownLine(line) {
			continue
		}
		n := len(row) - 1
		if n > plan.MonthCount {
			n = plan.MonthCount
		}
		monthly := make([]float64, 0, n)
		for _, cell := range row[1 : 1+n] {
			monthly = append(monthly, plan.CellFloat(cell))
		}
		direct = append(direct, capacity.Row{Line: line, Monthly: monthly})
	}
	if len(direct) == 0 {
		return capacity.Defaults(), nil
	}
	m, err := capacity.DeriveDirect(direct)
	if err != nil {
		return nil, err
	}
	fillDefaultLines(m)
	return m, nil
}

func jphWithDefaults(in map[string]float64) map[plan.LineID]float64 {
	out := make(map[plan.LineID]float64, len(plan.DefaultJPH)+len(in))
	for l, v := range plan.DefaultJPH {
		out[l] = v
	}
	for raw, v := range in {
		out[plan.NormalizeLineID(raw)] = v
	}
	return out
}

// scenarioOutput shapes one outcome into wire form. Failed scenarios
// carry their status and error with empty result blocks.
func scenarioOutput(parts []plan.Part, o scenario.Outcome) domain.ScenarioOutput {
	out := domain.ScenarioOutput{
		Label:       o.Scenario.Label,
		Status:      string(o.Status()),
		TotalDemand: plan.TotalDemand(parts),
	}
	if o.Err != nil {
		out.Error = o.Err.Error()
		return out
	}

	res := o.Result
	out.SolveTimeMS = res.SolveTime.Milliseconds()
	out.TotalAllocated = res.TotalAllocated()
	out.TotalUnmet = res.TotalUnmet()
	out.LineLoads = lineLoads(o.Scenario.Capacity, res)
	out.Allocations = allocations(parts, res)
	out.Unmet = unmet(parts, res)
	return out
}

func lineLoads(caps capacity.Matrix, res *solver.Result) []domain.LineLoadOutput {
	lines := make([]plan.LineID, 0, len(res.LineLoads))
	for l := range res.LineLoads {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })

	out := make([]domain.LineLoadOutput, 0, len(lines))
	for _, line := range lines {
		row := domain.LineLoadOutput{
			Line:            string(line),
			MonthlyCapacity: make([]float64, plan.MonthCount),
			MonthlyLoad:     make([]float64, plan.MonthCount),
		}
		var capSum, loadSum float64
		loads := res.LineLoads[line]
		for m := 0; m < plan.MonthCount; m++ {
			row.MonthlyCapacity[m] = caps.Get(line, m)
			row.MonthlyLoad[m] = loads[m]
			capSum += row.MonthlyCapacity[m]
			loadSum += loads[m]
		}
		row.AvgCapacity = capSum / plan.MonthCount
		row.AvgLoad = loadSum / plan.MonthCount
		if capSum > 0 {
			row.LoadRate = loadSum / capSum
		}
		out = append(out, row)
	}
	return out
}

func allocations(parts []plan.Part, res *solver.Result) []domain.AllocationOutput {
	var out []domain.AllocationOutput
	for _, p := range parts {
		byLine := res.Allocation[p.Number]
		for _, line := range p.Lines {
			months, ok := byLine[line]
			if !ok {
				continue
			}
			row := domain.AllocationOutput{
				PartNumber: string(p.Number),
				Line:       string(line),
				Monthly:    make([]float64, plan.MonthCount),
			}
			for m, q := range months {
				row.Monthly[m] = q
				row.Total += q
			}
			if row.Total > 0 {
				out = append(out, row)
			}
		}
	}
	return out
}

func unmet(parts []plan.Part, res *solver.Result) []domain.UnmetOutput {
	var out []domain.UnmetOutput
	for _, p := range parts {
		months, ok := res.Unmet[p.Number]
		if !ok {
			continue
		}
		row := domain.UnmetOutput{
			PartNumber: string(p.Number),
			Monthly:    make([]float64, plan.MonthCount),
		}
		for m, u := range months {
			row.Monthly[m] = u
			row.Total += u
		}
		out = append(out, row)
	}
	return out
}

func comparisonOutput(c scenario.Comparison) domain.ComparisonOutput {
	out := domain.ComparisonOutput{
		Labels:     c.Labels,
		NewlyUnmet: make([][]string, len(c.NewlyUnmet)),
	}
	for _, row := range c.Summary {
		out.Summary = append(out.Summary, domain.SummaryOutput{
			Label:       row.Label,
			Status:      string(row.Status),
			Error:       row.Error,
			TotalDemand: row.TotalDemand,
			TotalUnmet:  row.TotalUnmet,
			LoadRate:    row.LoadRate,
		})
	}
	for _, row := range c.Lines {
		out.Lines = append(out.Lines, domain.LineComparisonOutput{
			Line:        string(row.Line),
			AvgCapacity: row.AvgCapacity,
			AvgLoad:     row.AvgLoad,
			LoadRate:    row.LoadRate,
		})
	}
	for _, row := range c.Unmet {
		out.Unmet = append(out.Unmet, domain.UnmetComparisonOutput{
			PartNumber: string(row.Part),
			TotalUnmet: row.TotalUnmet,
		})
	}
	for i, parts := range c.NewlyUnmet {
		out.NewlyUnmet[i] = make([]string, 0, len(parts))
		for _, p := range parts {
			out.NewlyUnmet[i] = append(out.NewlyUnmet[i], string(p))
		}
	}
	return out
}

// 2-D table shaping for spreadsheet clients

func lineLoadRows(out domain.ScenarioOutput) [][]any {
	rows := make([][]any, 0, len(out.LineLoads))
	for _, l := range out.LineLoads {
		rows = append(rows, []any{l.Line, l.AvgCapacity, l.AvgLoad, l.LoadRate})
	}
	return rows
}

func allocationRows(out domain.ScenarioOutput) [][]any {
	rows := make([][]any, 0, len(out.Allocations))
	for _, a := range out.Allocations {
		row := []any{a.PartNumber, a.Line}
		for _, q := range a.Monthly {
			row = append(row, q)
		}
		rows = append(rows, row)
	}
	return rows
}

func unmetRows(out domain.ScenarioOutput) [][]any {
	rows := make([][]any, 0, len(out.Unmet))
	for _, u := range out.Unmet {
		row := []any{u.PartNumber}
		for _, q := range u.Monthly {
			row = append(row, q)
		}
		rows = append(rows, row)
	}
	return rows
}
