package main

import (
	"log"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"storefront-voucher/pkg/config"
	"storefront-voucher/pkg/db"
	"storefront-voucher/pkg/health"
	"storefront-voucher/pkg/httpapi"
	"storefront-voucher/pkg/logger"
	"storefront-voucher/pkg/redis"
	"storefront-voucher/pkg/sequence"
	"storefront-voucher/pkg/server"
	"storefront-voucher/services/order"
	"storefront-voucher/services/payment"
	"storefront-voucher/services/voucher"
)

func main() {
	opts := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		redis.Module,
		sequence.Module,
		fx.Provide(
			provideSnowflakeNode,
		),
		health.Module,
		httpapi.Module,
		voucher.Module,
		order.Module,
		payment.Module,
		server.ProvideHTTPServer,
		fxLogger,
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	app := fx.New(opts...)

	app.Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})

func provideSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
