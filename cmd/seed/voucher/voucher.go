package main

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-voucher/pkg/config"
	"storefront-voucher/pkg/db"
	"storefront-voucher/pkg/logger"
	"storefront-voucher/services/voucher"
)

func main() {
	opts := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		fx.Provide(func() (*snowflake.Node, error) {
			return snowflake.NewNode(1)
		}),
		fx.Invoke(seed),
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	app := fx.New(opts...)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	_ = app.Stop(ctx)
}

func seed(gdb *gorm.DB, node *snowflake.Node) error {
	if err := gdb.AutoMigrate(&voucher.Voucher{}, &voucher.VoucherUsage{}); err != nil {
		return err
	}

	cap50k := int64(50_000)
	min200k := int64(200_000)
	limit100 := int64(100)
	oncePerUser := int64(1)
	endOfMonth := time.Now().AddDate(0, 1, 0)

	vouchers := []voucher.Voucher{
		{
			VoucherID:    node.Generate().String(),
			Code:         "WELCOME10",
			Title:        "Giảm 10% cho đơn đầu tiên",
			Type:         voucher.TypePercent,
			Value:        10,
			MaxDiscount:  &cap50k,
			UsagePerUser: &oncePerUser,
			Active:       true,
		},
		{
			VoucherID:     node.Generate().String(),
			Code:          "SALE50K",
			Title:         "Giảm 50.000đ cho đơn từ 200.000đ",
			Type:          voucher.TypeFixed,
			Value:         50_000,
			MinOrderValue: &min200k,
			UsageLimit:    &limit100,
			EndDate:       &endOfMonth,
			Active:        true,
		},
		{
			VoucherID: node.Generate().String(),
			Code:      "FREESHIP30K",
			Title:     "Miễn phí vận chuyển tối đa 30.000đ",
			Type:      voucher.TypeFreeship,
			Value:     30_000,
			Active:    true,
		},
	}

	for _, v := range vouchers {
		res := gdb.Where(&voucher.Voucher{Code: v.Code}).FirstOrCreate(&v)
		if res.Error != nil {
			zap.L().Error("failed to seed voucher", zap.String("code", v.Code), zap.Error(res.Error))
			return res.Error
		}
	}

	zap.L().Info("seeded demo vouchers", zap.Int("count", len(vouchers)))
	return nil
}
