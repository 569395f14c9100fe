package order

import (
	"context"
	"testing"

	"storefront-voucher/services/testutil"
	"storefront-voucher/services/voucher"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func ptrInt64(v int64) *int64 { return &v }
func ptrStr(s string) *string { return &s }

func newTestServices(t *testing.T) (*Service, *voucher.Service, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t, &voucher.Voucher{}, &voucher.VoucherUsage{}, &Order{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	vouchers := voucher.NewService(voucher.ServiceParams{DB: db, Node: node})
	orders := NewService(ServiceParams{DB: db, Node: node, Vouchers: vouchers})
	return orders, vouchers, db
}

func TestPlaceOrderWithoutVoucher(t *testing.T) {
	orders, _, _ := newTestServices(t)

	o, err := orders.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:   ptrStr("user-1"),
		Subtotal: 250_000,
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, int64(250_000), o.Subtotal)
	require.Equal(t, int64(0), o.Discount)
	require.Equal(t, int64(250_000), o.Total)
	require.NotEmpty(t, o.OrderCode)
}

func TestPlaceOrderRejectsNonPositiveSubtotal(t *testing.T) {
	orders, _, _ := newTestServices(t)

	_, err := orders.PlaceOrder(context.Background(), PlaceOrderInput{Subtotal: 0})
	require.Error(t, err)

	_, err = orders.PlaceOrder(context.Background(), PlaceOrderInput{Subtotal: -1})
	require.Error(t, err)
}

func TestPlaceOrderRedeemsVoucher(t *testing.T) {
	orders, vouchers, _ := newTestServices(t)
	ctx := context.Background()

	_, err := vouchers.CreateVoucher(ctx, voucher.CreateVoucherInput{
		Code: "SALE50K", Title: "Sale", Type: voucher.TypeFixed, Value: 50_000,
	})
	require.NoError(t, err)

	o, err := orders.PlaceOrder(ctx, PlaceOrderInput{
		UserID:      ptrStr("user-1"),
		Subtotal:    300_000,
		VoucherCode: ptrStr("SALE50K"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(50_000), o.Discount)
	require.Equal(t, int64(250_000), o.Total)

	// the redemption committed with the order: counter moved and the ledger
	// row points back at this order
	v, err := vouchers.GetVoucher(ctx, "SALE50K")
	require.NoError(t, err)
	require.Equal(t, int64(1), v.UsedCount)
}

func TestPlaceOrderAbortsOnRedemptionFailure(t *testing.T) {
	orders, vouchers, db := newTestServices(t)
	ctx := context.Background()

	_, err := vouchers.CreateVoucher(ctx, voucher.CreateVoucherInput{
		Code: "MIN200", Title: "Min", Type: voucher.TypeFixed, Value: 50_000,
		MinOrderValue: ptrInt64(200_000),
	})
	require.NoError(t, err)

	_, err = orders.PlaceOrder(ctx, PlaceOrderInput{
		UserID:      ptrStr("user-1"),
		Subtotal:    100_000,
		VoucherCode: ptrStr("MIN200"),
	})
	require.ErrorIs(t, err, voucher.ErrBelowMinimumOrder)

	// no order was created at full price
	var n int64
	require.NoError(t, db.Model(&Order{}).Count(&n).Error)
	require.Equal(t, int64(0), n)

	v, err := vouchers.GetVoucher(ctx, "MIN200")
	require.NoError(t, err)
	require.Equal(t, int64(0), v.UsedCount)
}

func TestPlaceOrderUnknownVoucher(t *testing.T) {
	orders, _, db := newTestServices(t)

	_, err := orders.PlaceOrder(context.Background(), PlaceOrderInput{
		Subtotal:    100_000,
		VoucherCode: ptrStr("MISSING"),
	})
	require.ErrorIs(t, err, voucher.ErrVoucherNotFound)

	var n int64
	require.NoError(t, db.Model(&Order{}).Count(&n).Error)
	require.Equal(t, int64(0), n)
}

func TestGetOrderNotFound(t *testing.T) {
	orders, _, _ := newTestServices(t)

	_, err := orders.GetOrder(context.Background(), "NOPE")
	require.Error(t, err)
}

func TestMarkPaidThenTerminal(t *testing.T) {
	orders, _, _ := newTestServices(t)
	ctx := context.Background()

	o, err := orders.PlaceOrder(ctx, PlaceOrderInput{Subtotal: 100_000})
	require.NoError(t, err)

	paid, err := orders.MarkPaid(ctx, o.OrderCode)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, paid.Status)

	// a replayed failure callback cannot flip a paid order
	still, err := orders.MarkFailed(ctx, o.OrderCode)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, still.Status)

	// nor does a second success change anything
	still, err = orders.MarkPaid(ctx, o.OrderCode)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, still.Status)
}

func TestMarkFailedThenTerminal(t *testing.T) {
	orders, _, _ := newTestServices(t)
	ctx := context.Background()

	o, err := orders.PlaceOrder(ctx, PlaceOrderInput{Subtotal: 100_000})
	require.NoError(t, err)

	failed, err := orders.MarkFailed(ctx, o.OrderCode)
	require.NoError(t, err)
	require.Equal(t, StatusFailed, failed.Status)

	still, err := orders.MarkPaid(ctx, o.OrderCode)
	require.NoError(t, err)
	require.Equal(t, StatusFailed, still.Status)
}
