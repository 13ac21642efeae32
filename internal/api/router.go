// Package api serves the generator over HTTP.
//
//	POST /generate  body {"level": 1|2|3}
//	POST /verify    body {"tree": <expression tree>}
//	GET  /health    liveness check
//	GET  /metrics   Prometheus metrics
package api

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/njchilds90/trickone/generator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Generator is the part of *generator.Generator the handlers use.
type Generator interface {
	GenerateResult(ctx context.Context, level generator.Level) (generator.Result, error)
}

// SetupRouter wires middleware and routes. Call gin.SetMode before it to
// choose release or debug mode.
func SetupRouter(gen Generator, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	// Recovery first so panics in later middleware are caught too.
	router.Use(Recover(logger))
	router.Use(RequestTracking(logger))
	router.Use(otelgin.Middleware("trickone"))

	h := NewHandler(gen, logger)
	router.POST("/generate", h.Generate)
	router.POST("/verify", h.Verify)
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
