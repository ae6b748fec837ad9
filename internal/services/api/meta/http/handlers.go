// Package http provides meta endpoints: service info, line and
// work-pattern catalogs
package http

import (
	"net/http"
	"time"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	"lineload/internal/core/version"
	phttp "lineload/internal/platform/net/http"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}

	r.Get("/health", phttp.JSONHandlerNoBody(h.health))
	r.Get("/version", phttp.JSONHandlerNoBody(h.version))
	r.Get("/service", phttp.JSONHandlerNoBody(h.service))
	r.Get("/lines", phttp.JSONHandlerNoBody(h.lines))
	r.Get("/patterns", phttp.JSONHandlerNoBody(h.patterns))
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"lineload-api"`
	Started string `json:"started"  example:"2026-04-01T09:00:00Z"`
	Now     string `json:"now"      example:"2026-04-01T09:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"lineload-api"`
	Started string `json:"started" example:"2026-04-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// LineInfo is one production line with its fallback defaults
type LineInfo struct {
	Line            string  `json:"line"             example:"4915"`
	DefaultCapacity float64 `json:"default_capacity" example:"70000"`
	DefaultJPH      float64 `json:"default_jph"      example:"350"`
}

// LinesResponse lists the known lines
type LinesResponse struct {
	Lines []LineInfo `json:"lines"`
}

// PatternInfo is one built-in work pattern
type PatternInfo struct {
	Name           string  `json:"name"            example:"2直2交替"`
	Formula        string  `json:"formula"         example:"{days} * 7.5 * 2 - {excl}"`
	ExclusionHours float64 `json:"exclusion_hours" example:"5"`
}

// PatternsResponse lists the built-in work patterns and the default
// working-day calendar
type PatternsResponse struct {
	Patterns    []PatternInfo `json:"patterns"`
	WorkingDays []float64     `json:"working_days"`
	MonthLabels []string      `json:"month_labels"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// @Summary Known production lines with default capacity and rate
// @Tags Meta
// @Produce json
// @Success 200 {object} LinesResponse
// @Router /meta/lines [get]
func (h *handlers) lines(_ *http.Request) (any, error) {
	resp := LinesResponse{Lines: make([]LineInfo, 0, len(plan.Lines))}
	for _, l := range plan.Lines {
		resp.Lines = append(resp.Lines, LineInfo{
			Line:            string(l),
			DefaultCapacity: plan.DefaultMonthlyCapacities[l],
			DefaultJPH:      plan.DefaultJPH[l],
		})
	}
	return resp, nil
}

// @Summary Built-in work patterns and working-day calendar
// @Tags Meta
// @Produce json
// @Success 200 {object} PatternsResponse
// @Router /meta/patterns [get]
func (h *handlers) patterns(_ *http.Request) (any, error) {
	resp := PatternsResponse{
		WorkingDays: plan.DefaultWorkingDays[:],
		MonthLabels: plan.MonthLabels[:],
	}
	for _, p := range capacity.DefaultWorkPatterns {
		resp.Patterns = append(resp.Patterns, PatternInfo{
			Name:           p.Name,
			Formula:        p.Formula,
			ExclusionHours: p.ExclusionHours,
		})
	}
	return resp, nil
}
