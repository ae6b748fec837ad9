// Package http exposes the optimize endpoints
package http

import (
	"net/http"

	phttp "lineload/internal/platform/net/http"

	"lineload/internal/services/api/optimize/domain"
	"lineload/internal/services/api/optimize/service"
)

type handlers struct {
	svc *service.Service
}

// Register mounts the optimize routes
func Register(r phttp.Router, svc *service.Service) {
	h := &handlers{svc: svc}

	r.Post("/", phttp.JSONHandler(h.optimize))
	r.Post("/table", phttp.JSONHandler(h.optimizeTable))
	r.Post("/compare", phttp.JSONHandler(h.compare))
	r.Post("/patterns", phttp.JSONHandler(h.patterns))
}

// @Summary Solve a single allocation at full capacity
// @Tags Optimize
// @Accept json
// @Produce json
// @Param request body domain.OptimizeRequest true "parts and optional capacity table"
// @Success 200 {object} domain.OptimizeResponse
// @Failure 400 {object} phttp.Envelope
// @Failure 422 {object} phttp.Envelope
// @Router /optimize [post]
func (h *handlers) optimize(r *http.Request, req domain.OptimizeRequest) (any, error) {
	return h.svc.Optimize(r.Context(), req)
}

// @Summary Solve from spreadsheet-shaped 2-D tables
// @Tags Optimize
// @Accept json
// @Produce json
// @Param request body domain.TableOptimizeRequest true "2-D part and capacity rows"
// @Success 200 {object} domain.TableOptimizeResponse
// @Failure 422 {object} phttp.Envelope
// @Router /optimize/table [post]
func (h *handlers) optimizeTable(r *http.Request, req domain.TableOptimizeRequest) (any, error) {
	return h.svc.OptimizeTable(r.Context(), req)
}

// @Summary Compare allocations across capacity scale fractions
// @Tags Optimize
// @Accept json
// @Produce json
// @Param request body domain.CompareRequest true "parts, capacities, and scale fractions"
// @Success 200 {object} domain.CompareResponse
// @Failure 422 {object} phttp.Envelope
// @Router /optimize/compare [post]
func (h *handlers) compare(r *http.Request, req domain.CompareRequest) (any, error) {
	return h.svc.Compare(r.Context(), req)
}

// @Summary Compare allocations across work patterns
// @Tags Optimize
// @Accept json
// @Produce json
// @Param request body domain.PatternsRequest true "parts, patterns, rates, and working days"
// @Success 200 {object} domain.CompareResponse
// @Failure 422 {object} phttp.Envelope
// @Router /optimize/patterns [post]
func (h *handlers) patterns(r *http.Request, req domain.PatternsRequest) (any, error) {
	return h.svc.ComparePatterns(r.Context(), req)
}
