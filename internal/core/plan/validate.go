package plan

import (
	perr "lineload/internal/platform/errors"
)

// Validate checks that parts form a well-posed optimization input: at
// least one part, every part with a non-empty rank list of at most three
// distinct lines, and no negative demand.
func Validate(parts []Part) error {
	if len(parts) == 0 {
		return perr.InvalidDemandf("no parts with demand")
	}
	seen := map[PartNumber]bool{}
	for _, p := range parts {
		if p.Number == "" {
			return perr.InvalidDemandf("part with empty number")
		}
		if seen[p.Number] {
			return perr.InvalidDemandf("duplicate part %s; aggregate rows before validating", p.Number)
		}
		seen[p.Number] = true

		if len(p.Lines) == 0 {
			return perr.InvalidDemandf("part %s has no eligible lines", p.Number)
		}
		if len(p.Lines) > MaxEligibleLines {
			return perr.InvalidDemandf("part %s has %d eligible lines, max is %d", p.Number, len(p.Lines), MaxEligibleLines)
		}
		lineSeen := map[LineID]bool{}
		for _, l := range p.Lines {
			if l == "" {
				return perr.InvalidDemandf("part %s has an empty line id", p.Number)
			}
			if lineSeen[l] {
				return perr.InvalidDemandf("part %s lists line %s twice", p.Number, l)
			}
			lineSeen[l] = true
		}
		for m, d := range p.Demand {
			if d < 0 {
				return perr.InvalidDemandf("part %s has negative demand %.2f in %s", p.Number, d, MonthLabels[m])
			}
		}
	}
	return nil
}
