package capacity

import (
	"lineload/internal/core/formula"
	"lineload/internal/core/plan"
	perr "lineload/internal/platform/errors"
)

// WorkPattern names a shift schedule and the formula converting working
// days into monthly operating hours
type WorkPattern struct {
	Name           string
	Formula        string
	ExclusionHours float64
}

// DefaultWorkPatterns are the plant's standard shift schedules
var DefaultWorkPatterns = []WorkPattern{
	{Name: "2直2交替", Formula: "{days} * 7.5 * 2 - {excl}", ExclusionHours: 5},
	{Name: "3直3交替", Formula: "{days} * 7.5 * 3 - {excl}", ExclusionHours: 8},
}

// PatternInput is everything a pattern derivation needs: the lines to
// derive for, their hourly production rates, and the working-day calendar.
type PatternInput struct {
	Lines       []plan.LineID
	JPH         map[plan.LineID]float64
	WorkingDays [plan.MonthCount]float64
}

// DerivePattern computes a capacity matrix from a work pattern: the
// formula converts each month's working days into operating hours, hours
// below zero clamp to zero, and each line's capacity is hours times its
// JPH rate. Every requested line must have a rate; negative days, a
// negative exclusion, or a negative rate is an invalid capacity input.
func DerivePattern(p WorkPattern, in PatternInput) (Matrix, error) {
	if len(in.Lines) == 0 {
		return nil, perr.InvalidCapacityf("pattern %s: no lines to derive", p.Name)
	}
	if p.ExclusionHours < 0 {
		return nil, perr.InvalidCapacityf("pattern %s: exclusion hours %.2f is negative", p.Name, p.ExclusionHours)
	}
	for i, d := range in.WorkingDays {
		if d < 0 {
			return nil, perr.InvalidCapacityf("pattern %s: working days %.2f in %s is negative", p.Name, d, plan.MonthLabels[i])
		}
	}

	ex, err := formula.Compile(p.Formula)
	if err != nil {
		return nil, perr.Wrapf(err, perr.CodeOf(err), "pattern %s", p.Name)
	}

	var hours [plan.MonthCount]float64
	for i, days := range in.WorkingDays {
		h, err := ex.Eval(formula.Inputs{Days: days, ExclusionHours: p.ExclusionHours})
		if err != nil {
			return nil, perr.Wrapf(err, perr.CodeOf(err), "pattern %s, %s", p.Name, plan.MonthLabels[i])
		}
		if h < 0 {
			h = 0
		}
		hours[i] = h
	}

	m := make(Matrix, len(in.Lines))
	for _, line := range in.Lines {
		rate, ok := in.JPH[line]
		if !ok {
			return nil, perr.InvalidCapacityf("pattern %s: no JPH rate for line %s", p.Name, line)
		}
		if rate < 0 {
			return nil, perr.InvalidCapacityf("pattern %s: JPH rate %.2f for line %s is negative", p.Name, rate, line)
		}
		var months [plan.MonthCount]float64
		for i, h := range hours {
			months[i] = rate * h
		}
		m[line] = months
	}
	return m, nil
}
