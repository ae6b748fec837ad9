package api

import (
	"encoding/json"
	"net/http"

	phttp "lineload/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the Swagger UI and JSON spec if enabled
func MountSwagger(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON)
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

// serveDocJSON serves a hand-maintained OAS3 skeleton; the UI stays
// usable without a spec generation step in the build
func serveDocJSON(w http.ResponseWriter, _ *http.Request) {
	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Line Load API",
			"description": "Allocates monthly part demand across production lines and compares capacity scenarios",
			"version":     "0.1.0",
		},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"paths": map[string]any{
			"/meta/health":   pathItem("get", "Meta", "Health check"),
			"/meta/version":  pathItem("get", "Meta", "Build and version info"),
			"/meta/service":  pathItem("get", "Meta", "Service info and uptime"),
			"/meta/lines":    pathItem("get", "Meta", "Known production lines with defaults"),
			"/meta/patterns": pathItem("get", "Meta", "Built-in work patterns and calendar"),

			"/optimize":          pathItem("post", "Optimize", "Solve a single allocation at full capacity"),
			"/optimize/table":    pathItem("post", "Optimize", "Solve from spreadsheet-shaped 2-D tables"),
			"/optimize/compare":  pathItem("post", "Optimize", "Compare allocations across capacity scales"),
			"/optimize/patterns": pathItem("post", "Optimize", "Compare allocations across work patterns"),
		},
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(spec)
}

func pathItem(method, tag, summary string) map[string]any {
	return map[string]any{
		method: map[string]any{
			"tags":    []any{tag},
			"summary": summary,
			"responses": map[string]any{
				"200": map[string]any{"description": "OK"},
			},
		},
	}
}
