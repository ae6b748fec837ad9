// Package plan holds the input model for a line-load optimization run:
// parts, their eligible lines, and monthly demand over a fiscal year.
package plan

import "sort"

// PartNumber is a normalized part identifier
type PartNumber string

// LineID is a normalized production line identifier
type LineID string

// MonthCount is the planning horizon; months are fiscal, April first
const MonthCount = 12

// MonthLabels are the fiscal-year month names, April through March
var MonthLabels = [MonthCount]string{
	"Apr", "May", "Jun", "Jul", "Aug", "Sep",
	"Oct", "Nov", "Dec", "Jan", "Feb", "Mar",
}

// MaxEligibleLines caps the rank list: one main line plus up to two fallbacks
const MaxEligibleLines = 3

// Part is one part's demand and routing. Lines is the eligible list in rank
// order: index 0 is the main line, 1..2 are fallbacks tried only when a
// higher-ranked line is out of capacity.
type Part struct {
	Number PartNumber
	Name   string
	Lines  []LineID
	Demand [MonthCount]float64
}

// TotalDemand sums the part's demand across all months
func (p Part) TotalDemand() float64 {
	var t float64
	for _, d := range p.Demand {
		t += d
	}
	return t
}

// MainLine returns the rank-0 line, or "" when the part has no lines
func (p Part) MainLine() LineID {
	if len(p.Lines) == 0 {
		return ""
	}
	return p.Lines[0]
}

// Rank returns the priority rank of the given line for this part, or -1
// when the line is not eligible
func (p Part) Rank(line LineID) int {
	for i, l := range p.Lines {
		if l == line {
			return i
		}
	}
	return -1
}

// LineUniverse returns the sorted union of all eligible lines across parts
func LineUniverse(parts []Part) []LineID {
	seen := map[LineID]bool{}
	var out []LineID
	for _, p := range parts {
		for _, l := range p.Lines {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TotalDemand sums demand across all parts and months
func TotalDemand(parts []Part) float64 {
	var t float64
	for _, p := range parts {
		t += p.TotalDemand()
	}
	return t
}
