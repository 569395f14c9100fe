package voucher

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("voucher.service",
	fx.Provide(NewService, NewHandler),
	fx.Invoke(
		autoMigrate,
		registerRoutes,
	),
)

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Voucher{}, &VoucherUsage{}); err != nil {
		zap.L().Error("failed to migrate voucher tables", zap.Error(err))
		return err
	}
	return nil
}

func registerRoutes(r *gin.Engine, h *Handler) {
	r.GET("/vouchers", h.List)
	r.POST("/vouchers", h.Create)
	r.GET("/vouchers/:code", h.Get)
	r.GET("/vouchers/:code/validate", h.Validate)
}
