package order

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("order.service",
	fx.Provide(NewService, NewHandler),
	fx.Invoke(
		autoMigrate,
		registerRoutes,
	),
)

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Order{}); err != nil {
		zap.L().Error("failed to migrate order tables", zap.Error(err))
		return err
	}
	return nil
}

func registerRoutes(r *gin.Engine, h *Handler) {
	r.POST("/orders", h.Place)
	r.GET("/orders/:code", h.Get)
}
