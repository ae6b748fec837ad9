package plan

import (
	"sort"
	"strconv"
	"strings"
)

// TableRow is one spreadsheet-shaped row: part number, main line, two
// fallback lines, then twelve monthly demand cells. Cells are untyped
// because JSON and workbook sources both deliver mixed values.
type TableRow = []any

// tableRowWidth is part + 3 line columns + 12 demand cells
const tableRowWidth = 4 + MonthCount

// PartsFromTable converts raw table rows into parts. Rows are skipped when
// the part cell is empty or a header, when the main line does not resolve
// to a known line, or when all twelve demand cells are zero. Duplicate part
// numbers aggregate their demand; the line list of the first occurrence
// wins. Returns parts in first-seen order.
func PartsFromTable(rows []TableRow) []Part {
	byNumber := map[PartNumber]*Part{}
	var order []PartNumber

	for _, row := range rows {
		if len(row) < tableRowWidth {
			continue
		}

		num := NormalizePartNumber(CellString(row[0]))
		if num == "" || isHeaderCell(CellString(row[0])) {
			continue
		}

		lines := tableLines(row[1:4])
		if len(lines) == 0 {
			continue
		}

		var demand [MonthCount]float64
		var total float64
		for m := 0; m < MonthCount; m++ {
			v := CellFloat(row[4+m])
			if v < 0 {
				v = 0
			}
			demand[m] = v
			total += v
		}
		if total == 0 {
			continue
		}

		if existing, ok := byNumber[num]; ok {
			for m := 0; m < MonthCount; m++ {
				existing.Demand[m] += demand[m]
			}
			continue
		}
		byNumber[num] = &Part{Number: num, Lines: lines, Demand: demand}
		order = append(order, num)
	}

	out := make([]Part, 0, len(order))
	for _, num := range order {
		out = append(out, *byNumber[num])
	}
	return out
}

// tableLines resolves the main/sub1/sub2 cells. The main line must be a
// known line or the result is empty; fallback lines that do not resolve
// or repeat an earlier line are dropped.
func tableLines(cells []any) []LineID {
	var out []LineID
	for i, c := range cells {
		l := NormalizeLineID(CellString(c))
		if l == "" || !KnownLine(l) {
			if i == 0 {
				return nil
			}
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == l {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}

func isHeaderCell(s string) bool {
	s = strings.TrimSpace(s)
	return s == "部品番号" || strings.EqualFold(s, "part_number") || strings.EqualFold(s, "part number")
}

// CellString renders an untyped table cell as a string
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// CellFloat renders an untyped table cell as a number; unparseable cells
// read as zero
func CellFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// SortParts orders parts by number for deterministic output
func SortParts(parts []Part) {
	sort.Slice(parts, func(i, j int) bool { return parts[i].Number < parts[j].Number })
}
