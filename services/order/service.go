package order

import (
	"context"
	"time"

	"storefront-voucher/pkg/errutil"
	"storefront-voucher/pkg/repository"
	"storefront-voucher/pkg/sequence"
	"storefront-voucher/services/voucher"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	node *snowflake.Node
	seq  sequence.Generator

	orders   repository.Repository[Order]
	vouchers *voucher.Service
}

type ServiceParams struct {
	fx.In
	DB       *gorm.DB
	Node     *snowflake.Node
	Seq      sequence.Generator `optional:"true"`
	Vouchers *voucher.Service
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:   p.DB,
		node: p.Node,
		seq:  p.Seq,

		orders:   repository.ProvideStore[Order](p.DB),
		vouchers: p.Vouchers,
	}
}

type PlaceOrderInput struct {
	UserID      *string `json:"userId"`
	Subtotal    int64   `json:"subtotal"`
	VoucherCode *string `json:"voucherCode"`
}

// PlaceOrder creates a pending order, redeeming the voucher (when given)
// inside the same transaction. A redemption failure aborts the whole
// placement: the order is never created with a full price after the shopper
// was quoted a discount.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*Order, error) {
	if in.Subtotal <= 0 {
		return nil, errutil.BadRequest("subtotal must be > 0", nil)
	}

	orderID := s.node.Generate().String()

	orderCode := orderID
	if s.seq != nil {
		code, err := s.seq.NextOrderCode(ctx)
		if err != nil {
			zap.L().Warn("failed to generate order code, falling back to order id", zap.Error(err))
		} else {
			orderCode = code
		}
	}

	var placed *Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var discount int64
		if in.VoucherCode != nil && *in.VoucherCode != "" {
			redemption, err := s.vouchers.RedeemTx(ctx, tx, *in.VoucherCode, in.UserID, &orderID, in.Subtotal)
			if err != nil {
				return err
			}
			discount = redemption.Discount
		}

		o := &Order{
			OrderID:     orderID,
			OrderCode:   orderCode,
			UserID:      in.UserID,
			Subtotal:    in.Subtotal,
			Discount:    discount,
			Total:       in.Subtotal - discount,
			VoucherCode: in.VoucherCode,
			Status:      StatusPending,
		}
		if err := s.orders.WithTrx(tx).Create(ctx, o); err != nil {
			zap.L().Error("failed to create order", zap.String("order_code", orderCode), zap.Error(err))
			return errutil.Internal("failed to create order", err)
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return placed, nil
}

func (s *Service) GetOrder(ctx context.Context, orderCode string) (*Order, error) {
	o, err := s.orders.FindOne(ctx, &Order{OrderCode: orderCode})
	if err != nil {
		return nil, errutil.Internal("failed to query order", err)
	}
	if o == nil {
		return nil, errutil.NotFound("order not found", nil)
	}
	return o, nil
}

// MarkPaid transitions a pending order to paid. Terminal orders are left
// untouched and reported as-is, so a replayed payment callback cannot flip
// an outcome.
func (s *Service) MarkPaid(ctx context.Context, orderCode string) (*Order, error) {
	return s.transition(ctx, orderCode, StatusPaid)
}

// MarkFailed transitions a pending order to failed.
func (s *Service) MarkFailed(ctx context.Context, orderCode string) (*Order, error) {
	return s.transition(ctx, orderCode, StatusFailed)
}

func (s *Service) transition(ctx context.Context, orderCode string, to Status) (*Order, error) {
	res := s.db.WithContext(ctx).
		Model(&Order{}).
		Where("order_code = ? AND status = ?", orderCode, StatusPending).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		zap.L().Error("failed to transition order", zap.String("order_code", orderCode), zap.Error(res.Error))
		return nil, errutil.Internal("failed to update order", res.Error)
	}

	return s.GetOrder(ctx, orderCode)
}
