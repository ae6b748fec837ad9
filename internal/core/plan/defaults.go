package plan

// Lines is the fixed set of disc machining lines covered by the planner
var Lines = []LineID{"4915", "4919", "4927", "4928", "4934", "4935", "4945", "4G01", "4J01"}

// DefaultMonthlyCapacities are fallback per-line monthly unit capacities,
// used when no capacity input is supplied
var DefaultMonthlyCapacities = map[LineID]float64{
	"4915": 70000,
	"4919": 80000,
	"4927": 40000,
	"4928": 40000,
	"4934": 50000,
	"4935": 85000,
	"4945": 50000,
	"4G01": 50000,
	"4J01": 10000,
}

// DefaultJPH are fallback per-line production rates in jobs per hour
var DefaultJPH = map[LineID]float64{
	"4915": 350,
	"4919": 400,
	"4927": 200,
	"4928": 200,
	"4934": 250,
	"4935": 425,
	"4945": 250,
	"4G01": 250,
	"4J01": 50,
}

// DefaultWorkingDays is the working-day calendar for a typical fiscal year,
// April through March
var DefaultWorkingDays = [MonthCount]float64{20, 19, 21, 22, 21, 20, 22, 19, 21, 20, 18, 21}

// DefaultScales are the capacity fractions compared in a standard
// what-if sweep
var DefaultScales = []float64{1.0, 0.9, 0.8}

// KnownLine reports whether the line belongs to the planner's line set
func KnownLine(l LineID) bool {
	for _, known := range Lines {
		if known == l {
			return true
		}
	}
	return false
}
