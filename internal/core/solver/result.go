package solver

import (
	"time"

	"lineload/internal/core/plan"
)

// Result is a completed allocation across the planning year.
//
// Allocation holds only part/line pairs that received units; Unmet holds
// only parts with unsatisfied demand somewhere in the year. LineLoads
// covers every line known to the solve, including idle ones.
type Result struct {
	Status     Status
	Allocation map[plan.PartNumber]map[plan.LineID][plan.MonthCount]float64
	Unmet      map[plan.PartNumber][plan.MonthCount]float64
	LineLoads  map[plan.LineID][plan.MonthCount]float64
	SolveTime  time.Duration
}

func newResult(parts []plan.Part, lines []plan.LineID) *Result {
	r := &Result{
		Allocation: make(map[plan.PartNumber]map[plan.LineID][plan.MonthCount]float64, len(parts)),
		Unmet:      make(map[plan.PartNumber][plan.MonthCount]float64),
		LineLoads:  make(map[plan.LineID][plan.MonthCount]float64, len(lines)),
	}
	for _, l := range lines {
		r.LineLoads[l] = [plan.MonthCount]float64{}
	}
	return r
}

func (r *Result) addAllocation(part plan.PartNumber, line plan.LineID, month int, qty float64) {
	byLine, ok := r.Allocation[part]
	if !ok {
		byLine = make(map[plan.LineID][plan.MonthCount]float64, plan.MaxEligibleLines)
		r.Allocation[part] = byLine
	}
	months := byLine[line]
	months[month] += qty
	byLine[line] = months

	loads := r.LineLoads[line]
	loads[month] += qty
	r.LineLoads[line] = loads
}

func (r *Result) addUnmet(part plan.PartNumber, month int, qty float64) {
	months := r.Unmet[part]
	months[month] += qty
	r.Unmet[part] = months
}

// TotalUnmet sums unmet demand across all parts and months
func (r *Result) TotalUnmet() float64 {
	var t float64
	for _, months := range r.Unmet {
		for _, u := range months {
			t += u
		}
	}
	return t
}

// TotalAllocated sums allocated units across all parts, lines, and months
func (r *Result) TotalAllocated() float64 {
	var t float64
	for _, byLine := range r.Allocation {
		for _, months := range byLine {
			for _, q := range months {
				t += q
			}
		}
	}
	return t
}

// UnmetFor returns a part's monthly unmet demand, zeros when fully met
func (r *Result) UnmetFor(part plan.PartNumber) [plan.MonthCount]float64 {
	return r.Unmet[part]
}

// AllocatedTo sums the units a part sent to one line over the year
func (r *Result) AllocatedTo(part plan.PartNumber, line plan.LineID) float64 {
	var t float64
	for _, q := range r.Allocation[part][line] {
		t += q
	}
	return t
}

// AvgLoad is a line's mean monthly load
func (r *Result) AvgLoad(line plan.LineID) float64 {
	var t float64
	for _, q := range r.LineLoads[line] {
		t += q
	}
	return t / plan.MonthCount
}
