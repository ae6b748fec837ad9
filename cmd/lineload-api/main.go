// @title         Line Load API
// @version       0.1.0
// @description   Allocates monthly part demand across production lines

package main

import (
	"context"

	"github.com/joho/godotenv"

	"lineload/internal/platform/config"
	"lineload/internal/platform/logger"
	"lineload/internal/platform/metrics"
	phttp "lineload/internal/platform/net/http"

	"lineload/internal/services/api"
)

func main() {
	// optional .env for local development
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (LINELOAD_API_*)
	root := config.New()
	apiCfg := root.Prefix("LINELOAD_API_")

	// bring up logging early
	l := logger.Get()

	col := metrics.NewCollector()

	// http server (reads LINELOAD_API_PORT / LINELOAD_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         l,
			Metrics:        col,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
