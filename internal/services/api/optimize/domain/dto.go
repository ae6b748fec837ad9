// Package domain holds the optimize API's wire types
package domain

// PartInput is one part row in typed form
type PartInput struct {
	PartNumber    string    `json:"part_number" validate:"required"`
	PartName      string    `json:"part_name"`
	MainLine      string    `json:"main_line" validate:"required"`
	Sub1Line      string    `json:"sub1_line"`
	Sub2Line      string    `json:"sub2_line"`
	MonthlyDemand []float64 `json:"monthly_demand" validate:"required,len=12,dive,gte=0"`
}

// OptimizeRequest runs a single allocation under one capacity matrix.
// Capacities maps line id to either one value (flat year) or up to
// twelve monthly values; omitted entirely, the built-in defaults apply.
// Scale shrinks the matrix before solving (0 means full capacity).
type OptimizeRequest struct {
	Parts            []PartInput          `json:"parts" validate:"required,min=1,dive"`
	Capacities       map[string][]float64 `json:"capacities"`
	Scale            float64              `json:"scale" validate:"omitempty,gt=0,lte=1"`
	TimeLimitSeconds int                  `json:"time_limit" validate:"omitempty,gte=1,lte=600"`
}

// TableOptimizeRequest is the spreadsheet-facing form: PartsData rows are
// [part, main, sub1, sub2, demand x12]; CapacitiesData rows are
// [line, value] or [line, value x12]. Mixed cell types are expected.
type TableOptimizeRequest struct {
	PartsData        [][]any   `json:"parts_data" validate:"required,min=1"`
	CapacitiesData   [][]any   `json:"capacities_data"`
	Scales           []float64 `json:"scales" validate:"omitempty,dive,gt=0,lte=1"`
	TimeLimitSeconds int       `json:"time_limit" validate:"omitempty,gte=1,lte=600"`
}

// CompareRequest sweeps capacity scale fractions over one base matrix
type CompareRequest struct {
	Parts            []PartInput          `json:"parts" validate:"required,min=1,dive"`
	Capacities       map[string][]float64 `json:"capacities"`
	Scales           []float64            `json:"scales" validate:"omitempty,dive,gt=0,lte=1"`
	TimeLimitSeconds int                  `json:"time_limit" validate:"omitempty,gte=1,lte=600"`
}

// WorkPatternInput names a shift pattern and its hour formula
type WorkPatternInput struct {
	Name           string  `json:"name" validate:"required"`
	Formula        string  `json:"formula" validate:"required,hourformula"`
	ExclusionHours float64 `json:"exclusion_hours" validate:"gte=0"`
}

// PatternsRequest compares one scenario per work pattern. JPH maps line
// id to units per hour; WorkingDays carries twelve month values and
// falls back to the standard calendar when omitted.
type PatternsRequest struct {
	Parts            []PartInput        `json:"parts" validate:"required,min=1,dive"`
	Patterns         []WorkPatternInput `json:"patterns" validate:"omitempty,dive"`
	JPH              map[string]float64 `json:"jph"`
	WorkingDays      []float64          `json:"working_days" validate:"omitempty,len=12,dive,gte=0"`
	TimeLimitSeconds int                `json:"time_limit" validate:"omitempty,gte=1,lte=600"`
}

// LineLoadOutput is one line's year under one scenario
type LineLoadOutput struct {
	Line            string    `json:"line"`
	MonthlyCapacity []float64 `json:"monthly_capacity"`
	MonthlyLoad     []float64 `json:"monthly_load"`
	AvgCapacity     float64   `json:"avg_capacity"`
	AvgLoad         float64   `json:"avg_load"`
	LoadRate        float64   `json:"load_rate"`
}

// AllocationOutput is one part/line pairing with at least one non-zero month
type AllocationOutput struct {
	PartNumber string    `json:"part_number"`
	Line       string    `json:"line"`
	Monthly    []float64 `json:"monthly"`
	Total      float64   `json:"total"`
}

// UnmetOutput is one part's unmet demand; only parts with any unmet appear
type UnmetOutput struct {
	PartNumber string    `json:"part_number"`
	Monthly    []float64 `json:"monthly"`
	Total      float64   `json:"total"`
}

// ScenarioOutput is one scenario's full result set
type ScenarioOutput struct {
	Label          string             `json:"label"`
	Status         string             `json:"status"`
	Error          string             `json:"error,omitempty"`
	SolveTimeMS    int64              `json:"solve_time_ms"`
	TotalDemand    float64            `json:"total_demand"`
	TotalAllocated float64            `json:"total_allocated"`
	TotalUnmet     float64            `json:"total_unmet"`
	LineLoads      []LineLoadOutput   `json:"line_loads"`
	Allocations    []AllocationOutput `json:"allocations"`
	Unmet          []UnmetOutput      `json:"unmet,omitempty"`
}

// SummaryOutput is one scenario's headline row in a comparison
type SummaryOutput struct {
	Label       string  `json:"label"`
	Status      string  `json:"status"`
	Error       string  `json:"error,omitempty"`
	TotalDemand float64 `json:"total_demand"`
	TotalUnmet  float64 `json:"total_unmet"`
	LoadRate    float64 `json:"load_rate"`
}

// LineComparisonOutput tracks one line across scenarios; slices index by
// scenario position
type LineComparisonOutput struct {
	Line        string    `json:"line"`
	AvgCapacity []float64 `json:"avg_capacity"`
	AvgLoad     []float64 `json:"avg_load"`
	LoadRate    []float64 `json:"load_rate"`
}

// UnmetComparisonOutput tracks one part's total unmet across scenarios
type UnmetComparisonOutput struct {
	PartNumber string    `json:"part_number"`
	TotalUnmet []float64 `json:"total_unmet"`
}

// ComparisonOutput is the cross-scenario summary block
type ComparisonOutput struct {
	Labels     []string                `json:"labels"`
	Summary    []SummaryOutput         `json:"summary"`
	Lines      []LineComparisonOutput  `json:"lines"`
	Unmet      []UnmetComparisonOutput `json:"unmet,omitempty"`
	NewlyUnmet [][]string              `json:"newly_unmet"`
}

// OptimizeResponse is the single-scenario response
type OptimizeResponse struct {
	RunID    string         `json:"run_id"`
	Scenario ScenarioOutput `json:"scenario"`
}

// CompareResponse is the multi-scenario response
type CompareResponse struct {
	RunID      string           `json:"run_id"`
	Scenarios  []ScenarioOutput `json:"scenarios"`
	Comparison ComparisonOutput `json:"comparison"`
}

// TableOptimizeResponse mirrors OptimizeResponse with 2-D result tables
// for spreadsheet clients: LineLoadRows is [line, avg capacity, avg
// load, load rate]; AllocationRows is [part, line, demand x12]; UnmetRows
// is [part, unmet x12].
type TableOptimizeResponse struct {
	RunID          string           `json:"run_id"`
	Scenarios      []ScenarioOutput `json:"scenarios"`
	LineLoadRows   [][]any          `json:"line_load_rows"`
	AllocationRows [][]any          `json:"allocation_rows"`
	UnmetRows      [][]any          `json:"unmet_rows"`
}
