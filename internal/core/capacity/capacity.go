// Package capacity derives per-line monthly capacity matrices, either
// directly from capacity rows or from work-pattern hour formulas combined
// with per-line production rates.
package capacity

import (
	"math"
	"sort"

	"lineload/internal/core/plan"
	perr "lineload/internal/platform/errors"
)

// Matrix maps each line to its monthly unit capacity. Lines absent from
// the matrix have zero capacity in every month.
type Matrix map[plan.LineID][plan.MonthCount]float64

// Get returns the capacity of a line in a month, zero when the line is
// not in the matrix
func (m Matrix) Get(line plan.LineID, month int) float64 {
	return m[line][month]
}

// Lines returns the matrix's lines in sorted order
func (m Matrix) Lines() []plan.LineID {
	out := make([]plan.LineID, 0, len(m))
	for l := range m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total sums capacity across all lines and months
func (m Matrix) Total() float64 {
	var t float64
	for _, months := range m {
		for _, c := range months {
			t += c
		}
	}
	return t
}

// Clone returns an independent copy
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for l, months := range m {
		out[l] = months
	}
	return out
}

// Scale returns a copy with every cell multiplied by f. Cells holding an
// integral base value are floored after scaling so unit-count capacities
// stay whole; fractional bases scale exactly.
func (m Matrix) Scale(f float64) (Matrix, error) {
	if f < 0 {
		return nil, perr.InvalidCapacityf("capacity scale %.3f is negative", f)
	}
	out := make(Matrix, len(m))
	for l, months := range m {
		var scaled [plan.MonthCount]float64
		for i, c := range months {
			v := c * f
			if c == math.Trunc(c) {
				v = math.Floor(v)
			}
			scaled[i] = v
		}
		out[l] = scaled
	}
	return out, nil
}

// Row is one line's direct capacity input. Monthly may hold a single
// value, applied to all twelve months, or up to twelve values; shorter
// rows are padded with their final value.
type Row struct {
	Line    plan.LineID
	Monthly []float64
}

// DeriveDirect builds a matrix from explicit capacity rows. Negative
// values and empty rows are rejected; duplicate lines keep the last row.
func DeriveDirect(rows []Row) (Matrix, error) {
	m := make(Matrix, len(rows))
	for _, r := range rows {
		if r.Line == "" {
			return nil, perr.InvalidCapacityf("capacity row with empty line id")
		}
		if len(r.Monthly) == 0 {
			return nil, perr.InvalidCapacityf("capacity row for line %s has no values", r.Line)
		}
		if len(r.Monthly) > plan.MonthCount {
			return nil, perr.InvalidCapacityf("capacity row for line %s has %d values, max is %d", r.Line, len(r.Monthly), plan.MonthCount)
		}
		for i, v := range r.Monthly {
			if v < 0 {
				return nil, perr.InvalidCapacityf("line %s has negative capacity %.2f in %s", r.Line, v, plan.MonthLabels[i])
			}
		}
		var months [plan.MonthCount]float64
		for i := 0; i < plan.MonthCount; i++ {
			if i < len(r.Monthly) {
				months[i] = r.Monthly[i]
			} else {
				months[i] = r.Monthly[len(r.Monthly)-1]
			}
		}
		m[r.Line] = months
	}
	return m, nil
}

// Defaults builds the fallback matrix from the built-in per-line monthly
// capacities, flat across the year
func Defaults() Matrix {
	m := make(Matrix, len(plan.Lines))
	for _, l := range plan.Lines {
		var months [plan.MonthCount]float64
		for i := range months {
			months[i] = plan.DefaultMonthlyCapacities[l]
		}
		m[l] = months
	}
	return m
}
