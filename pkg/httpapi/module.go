package httpapi

import (
	"storefront-voucher/pkg/config"
	"storefront-voucher/pkg/health"
	"storefront-voucher/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Module("httpapi",
	fx.Provide(ProvideRouter),
	fx.Invoke(registerHealthEndpoints),
)

func ProvideRouter(cfg *config.Config) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Error())
	return r
}

func registerHealthEndpoints(r *gin.Engine, h health.HealthService) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}
