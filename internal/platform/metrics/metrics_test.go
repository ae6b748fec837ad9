package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"lineload/internal/platform/testkit"
)

func TestObserveSolveAndExport(t *testing.T) {
	c := NewCollector()
	c.ObserveSolve("90%", "OPTIMAL", 120*time.Millisecond, 50)
	c.ObserveSolve("80%", "SOLVE_ERROR", 10*time.Millisecond, 0)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	testkit.MustContain(t, body, `lineload_scenarios_total{status="OPTIMAL"} 1`)
	testkit.MustContain(t, body, `lineload_scenarios_total{status="SOLVE_ERROR"} 1`)
	testkit.MustContain(t, body, `lineload_unmet_demand{scenario="90%"} 50`)
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	testkit.MustNotPanic(t, func() { c.ObserveSolve("x", "OPTIMAL", 0, 0) })
}
