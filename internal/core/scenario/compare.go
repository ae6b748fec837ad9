package scenario

import (
	"sort"

	"lineload/internal/core/plan"
	"lineload/internal/core/solver"
)

// Comparison aligns a batch of outcomes on a shared part and line
// universe. Every per-scenario slice is indexed by scenario position, so
// a scenario with zero allocation on a line still contributes a zero
// rather than a gap.
type Comparison struct {
	Labels     []string
	Summary    []SummaryRow
	Lines      []LineComparison
	Unmet      []UnmetComparison
	NewlyUnmet [][]plan.PartNumber
}

// SummaryRow is one scenario's headline numbers
type SummaryRow struct {
	Label       string
	Status      solver.Status
	Error       string
	TotalDemand float64
	TotalUnmet  float64
	// LoadRate is total allocated load over total capacity, zero when
	// the scenario has no capacity or failed
	LoadRate float64
}

// LineComparison tracks one line across scenarios, yearly averages
type LineComparison struct {
	Line        plan.LineID
	AvgCapacity []float64
	AvgLoad     []float64
	LoadRate    []float64
}

// UnmetComparison tracks one part's total unmet demand across scenarios
type UnmetComparison struct {
	Part       plan.PartNumber
	TotalUnmet []float64
}

// Compare builds the cross-scenario summary for a finished batch.
// Failed scenarios appear with their error and zero metrics. NewlyUnmet
// lists, per scenario, the parts that have unmet demand there but none
// in the first successful scenario (the baseline); the baseline's own
// list is empty.
func Compare(parts []plan.Part, outcomes []Outcome) Comparison {
	c := Comparison{
		Labels:     make([]string, len(outcomes)),
		NewlyUnmet: make([][]plan.PartNumber, len(outcomes)),
	}
	totalDemand := plan.TotalDemand(parts)

	for i, o := range outcomes {
		c.Labels[i] = o.Scenario.Label
		row := SummaryRow{Label: o.Scenario.Label, Status: o.Status(), TotalDemand: totalDemand}
		if o.Err != nil {
			row.Error = o.Err.Error()
		} else {
			row.TotalUnmet = o.Result.TotalUnmet()
			if total := o.Scenario.Capacity.Total(); total > 0 {
				row.LoadRate = o.Result.TotalAllocated() / total
			}
		}
		c.Summary = append(c.Summary, row)
	}

	c.Lines = compareLines(parts, outcomes)
	c.Unmet = compareUnmet(parts, outcomes)

	baseline := -1
	for i, o := range outcomes {
		if o.Err == nil {
			baseline = i
			break
		}
	}
	if baseline >= 0 {
		base := unmetParts(outcomes[baseline])
		for i, o := range outcomes {
			if i == baseline || o.Err != nil {
				continue
			}
			for part := range unmetParts(o) {
				if !base[part] {
					c.NewlyUnmet[i] = append(c.NewlyUnmet[i], part)
				}
			}
			sortParts(c.NewlyUnmet[i])
		}
	}
	return c
}

func compareLines(parts []plan.Part, outcomes []Outcome) []LineComparison {
	seen := map[plan.LineID]bool{}
	var lines []plan.LineID
	add := func(l plan.LineID) {
		if !seen[l] {
			seen[l] = true
			lines = append(lines, l)
		}
	}
	for _, p := range parts {
		for _, l := range p.Lines {
			add(l)
		}
	}
	for _, o := range outcomes {
		for _, l := range o.Scenario.Capacity.Lines() {
			add(l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })

	out := make([]LineComparison, 0, len(lines))
	for _, line := range lines {
		lc := LineComparison{
			Line:        line,
			AvgCapacity: make([]float64, len(outcomes)),
			AvgLoad:     make([]float64, len(outcomes)),
			LoadRate:    make([]float64, len(outcomes)),
		}
		for i, o := range outcomes {
			var capSum float64
			for m := 0; m < plan.MonthCount; m++ {
				capSum += o.Scenario.Capacity.Get(line, m)
			}
			lc.AvgCapacity[i] = capSum / plan.MonthCount
			if o.Err != nil {
				continue
			}
			lc.AvgLoad[i] = o.Result.AvgLoad(line)
			if capSum > 0 {
				lc.LoadRate[i] = lc.AvgLoad[i] * plan.MonthCount / capSum
			}
		}
		out = append(out, lc)
	}
	return out
}

func compareUnmet(parts []plan.Part, outcomes []Outcome) []UnmetComparison {
	affected := map[plan.PartNumber]bool{}
	for _, o := range outcomes {
		for part := range unmetParts(o) {
			affected[part] = true
		}
	}
	if len(affected) == 0 {
		return nil
	}

	var ordered []plan.PartNumber
	for _, p := range parts {
		if affected[p.Number] {
			ordered = append(ordered, p.Number)
		}
	}
	sortParts(ordered)

	out := make([]UnmetComparison, 0, len(ordered))
	for _, part := range ordered {
		uc := UnmetComparison{Part: part, TotalUnmet: make([]float64, len(outcomes))}
		for i, o := range outcomes {
			if o.Err != nil {
				continue
			}
			for _, u := range o.Result.UnmetFor(part) {
				uc.TotalUnmet[i] += u
			}
		}
		out = append(out, uc)
	}
	return out
}

func unmetParts(o Outcome) map[plan.PartNumber]bool {
	out := map[plan.PartNumber]bool{}
	if o.Err != nil {
		return out
	}
	for part, months := range o.Result.Unmet {
		for _, u := range months {
			if u > 0 {
				out[part] = true
				break
			}
		}
	}
	return out
}

func sortParts(ps []plan.PartNumber) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}
