// Package api provides the HTTP API for the application
package api

import (
	"compress/flate"
	stdhttp "net/http"
	"time"

	"lineload/internal/platform/config"
	perr "lineload/internal/platform/errors"
	"lineload/internal/platform/logger"
	"lineload/internal/platform/metrics"
	phttp "lineload/internal/platform/net/http"
	mw "lineload/internal/platform/net/middleware"

	metahttp "lineload/internal/services/api/meta/http"
	optimizehttp "lineload/internal/services/api/optimize/http"
	optimizesvc "lineload/internal/services/api/optimize/service"
)

// ServiceName identifies this binary in health and version payloads
const ServiceName = "lineload-api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Metrics        *metrics.Collector
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	startedAt := time.Now()

	r.Use(
		mw.RequestID(),
		mw.RealIP(),
		mw.RecoverJSON,
		mw.NoCache(),
		mw.AccessLog,
		mw.CORS(mw.CORSOptions{}),
		mw.Compress(flate.DefaultCompression),
		mw.Heartbeat("/health"),
		mw.RedirectSlashes(),
		mw.Timeout(opt.Config.MayDuration("REQUEST_TIMEOUT", 120*time.Second)),
	)

	// unmatched routes get the same envelope shape as everything else
	r.NotFound(phttp.Handle(func(*stdhttp.Request) phttp.Response {
		return phttp.Error(perr.ErrNotFound)
	}))

	svc := optimizesvc.New(opt.Metrics)

	r.Route("/api/v1", func(api phttp.Router) {
		api.Route("/meta", func(rr phttp.Router) {
			metahttp.Register(rr, metahttp.Deps{
				ServiceName: ServiceName,
				StartedAt:   startedAt,
			})
		})
		api.Route("/optimize", func(rr phttp.Router) {
			optimizehttp.Register(rr, svc)
		})
	})

	MountSwagger(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
}
