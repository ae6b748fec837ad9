// Package service runs allocation requests for the optimize API
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	"lineload/internal/core/scenario"
	perr "lineload/internal/platform/errors"
	"lineload/internal/platform/logger"
	"lineload/internal/platform/metrics"
	pnet "lineload/internal/platform/net"

	"lineload/internal/services/api/optimize/domain"
)

// default per-scenario solve budget when the request omits one
const defaultTimeLimit = 60 * time.Second

// Service converts wire requests into core inputs, runs the scenario
// orchestrator, and shapes results back into wire form
type Service struct {
	metrics *metrics.Collector
}

// New constructs a Service; the collector may be nil
func New(m *metrics.Collector) *Service {
	return &Service{metrics: m}
}

// Optimize solves a single scenario, at full capacity unless the
// request carries a scale fraction
func (s *Service) Optimize(ctx context.Context, req domain.OptimizeRequest) (*domain.OptimizeResponse, error) {
	ctx, runID := s.begin(ctx)

	parts, err := typedParts(req.Parts)
	if err != nil {
		return nil, err
	}
	caps, err := capsFromMap(req.Capacities)
	if err != nil {
		return nil, err
	}
	scale := req.Scale
	if scale == 0 {
		scale = 1.0
	}
	scenarios, err := scenario.FromScales(caps, []float64{scale})
	if err != nil {
		return nil, err
	}

	outcomes, err := s.run(ctx, parts, scenarios, req.TimeLimitSeconds)
	if err != nil {
		return nil, err
	}
	if outcomes[0].Err != nil {
		return nil, outcomes[0].Err
	}
	return &domain.OptimizeResponse{
		RunID:    runID,
		Scenario: scenarioOutput(parts, outcomes[0]),
	}, nil
}

// OptimizeTable solves the spreadsheet 2-D form; Scales beyond the first
// entry add comparison scenarios
func (s *Service) OptimizeTable(ctx context.Context, req domain.TableOptimizeRequest) (*domain.TableOptimizeResponse, error) {
	ctx, runID := s.begin(ctx)

	parts := plan.PartsFromTable(req.PartsData)
	if len(parts) == 0 {
		return nil, perr.InvalidDemandf("no usable part rows in table input")
	}
	caps, err := capsFromTable(req.CapacitiesData)
	if err != nil {
		return nil, err
	}

	scales := req.Scales
	if len(scales) == 0 {
		scales = []float64{1.0}
	}
	scenarios, err := scenario.FromScales(caps, scales)
	if err != nil {
		return nil, err
	}

	outcomes, err := s.run(ctx, parts, scenarios, req.TimeLimitSeconds)
	if err != nil {
		return nil, err
	}

	resp := &domain.TableOptimizeResponse{RunID: runID}
	for _, o := range outcomes {
		resp.Scenarios = append(resp.Scenarios, scenarioOutput(parts, o))
	}
	first := outcomes[0]
	if first.Err == nil {
		out := scenarioOutput(parts, first)
		resp.LineLoadRows = lineLoadRows(out)
		resp.AllocationRows = allocationRows(out)
		resp.UnmetRows = unmetRows(out)
	}
	return resp, nil
}

// Compare sweeps capacity scales and builds the cross-scenario summary
func (s *Service) Compare(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	ctx, runID := s.begin(ctx)

	parts, err := typedParts(req.Parts)
	if err != nil {
		return nil, err
	}
	caps, err := capsFromMap(req.Capacities)
	if err != nil {
		return nil, err
	}

	scales := req.Scales
	if len(scales) == 0 {
		scales = plan.DefaultScales
	}
	scenarios, err := scenario.FromScales(caps, scales)
	if err != nil {
		return nil, err
	}
	return s.compare(ctx, runID, parts, scenarios, req.TimeLimitSeconds)
}

// ComparePatterns builds one scenario per work pattern and compares them
func (s *Service) ComparePatterns(ctx context.Context, req domain.PatternsRequest) (*domain.CompareResponse, error) {
	ctx, runID := s.begin(ctx)

	parts, err := typedParts(req.Parts)
	if err != nil {
		return nil, err
	}

	patterns := make([]capacity.WorkPattern, 0, len(req.Patterns))
	for _, p := range req.Patterns {
		patterns = append(patterns, capacity.WorkPattern{
			Name:           p.Name,
			Formula:        p.Formula,
			ExclusionHours: p.ExclusionHours,
		})
	}
	if len(patterns) == 0 {
		patterns = capacity.DefaultWorkPatterns
	}

	in := capacity.PatternInput{
		Lines:       plan.LineUniverse(parts),
		JPH:         jphWithDefaults(req.JPH),
		WorkingDays: plan.DefaultWorkingDays,
	}
	if len(req.WorkingDays) == plan.MonthCount {
		copy(in.WorkingDays[:], req.WorkingDays)
	}

	scenarios, err := scenario.FromPatterns(patterns, in)
	if err != nil {
		return nil, err
	}
	return s.compare(ctx, runID, parts, scenarios, req.TimeLimitSeconds)
}

func (s *Service) compare(ctx context.Context, runID string, parts []plan.Part, scenarios []scenario.Scenario, timeLimit int) (*domain.CompareResponse, error) {
	outcomes, err := s.run(ctx, parts, scenarios, timeLimit)
	if err != nil {
		return nil, err
	}

	resp := &domain.CompareResponse{RunID: runID}
	for _, o := range outcomes {
		resp.Scenarios = append(resp.Scenarios, scenarioOutput(parts, o))
	}
	resp.Comparison = comparisonOutput(scenario.Compare(parts, outcomes))
	return resp, nil
}

// begin tags the context with a fresh run id for log correlation
func (s *Service) begin(ctx context.Context) (context.Context, string) {
	runID := uuid.NewString()
	return pnet.WithRun(ctx, runID), runID
}

func (s *Service) run(ctx context.Context, parts []plan.Part, scenarios []scenario.Scenario, timeLimitSeconds int) ([]scenario.Outcome, error) {
	timeout := defaultTimeLimit
	if timeLimitSeconds > 0 {
		timeout = time.Duration(timeLimitSeconds) * time.Second
	}

	log := logger.C(ctx)
	started := time.Now()
	outcomes, err := scenario.Run(ctx, parts, scenarios, scenario.Options{Timeout: timeout})
	if err != nil {
		log.Warn().Err(err).Msg("allocation batch rejected")
		s.observeBatch(nil, err)
		return nil, err
	}

	for _, o := range outcomes {
		if o.Err != nil {
			log.Warn().Str("scenario", o.Scenario.Label).Err(o.Err).Msg("scenario failed")
			continue
		}
		log.Info().
			Str("scenario", o.Scenario.Label).
			Int("parts", len(parts)).
			Float64("total_unmet", o.Result.TotalUnmet()).
			Dur("solve_time", o.Result.SolveTime).
			Msg("scenario solved")
	}
	log.Info().Int("scenarios", len(scenarios)).Dur("elapsed", time.Since(started)).Msg("allocation batch done")

	s.observeBatch(outcomes, nil)
	return outcomes, nil
}

func (s *Service) observeBatch(outcomes []scenario.Outcome, batchErr error) {
	if s.metrics == nil {
		return
	}
	if batchErr != nil {
		s.metrics.ObserveSolve("batch", "rejected", 0, 0)
		return
	}
	for _, o := range outcomes {
		if o.Err != nil {
			s.metrics.ObserveSolve(o.Scenario.Label, "error", 0, 0)
			continue
		}
		s.metrics.ObserveSolve(o.Scenario.Label, "ok", o.Result.SolveTime, o.Result.TotalUnmet())
	}
}
