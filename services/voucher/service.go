package voucher

import (
	"context"
	"errors"
	"time"

	"storefront-voucher/pkg/db/option"
	"storefront-voucher/pkg/errutil"
	"storefront-voucher/pkg/repository"
	"storefront-voucher/pkg/sequence"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	node *snowflake.Node
	seq  sequence.Generator

	voucher repository.Repository[Voucher]
	usage   repository.Repository[VoucherUsage]
}

type ServiceParams struct {
	fx.In
	DB   *gorm.DB
	Node *snowflake.Node
	Seq  sequence.Generator `optional:"true"`
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:   p.DB,
		node: p.Node,
		seq:  p.Seq,

		voucher: repository.ProvideStore[Voucher](p.DB),
		usage:   repository.ProvideStore[VoucherUsage](p.DB),
	}
}

type CreateVoucherInput struct {
	Code          string     `json:"code"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Type          Type       `json:"type"`
	Value         int64      `json:"value"`
	MaxDiscount   *int64     `json:"maxDiscount"`
	MinOrderValue *int64     `json:"minOrderValue"`
	UsageLimit    *int64     `json:"usageLimit"`
	UsagePerUser  *int64     `json:"usagePerUser"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Active        *bool      `json:"active"`
}

// =========================================================
// CreateVoucher
// =========================================================
func (s *Service) CreateVoucher(ctx context.Context, in CreateVoucherInput) (*Voucher, error) {
	if in.Title == "" {
		return nil, errutil.BadRequest("title is required", nil)
	}
	if !in.Type.Valid() {
		return nil, errutil.BadRequest("type must be FIXED, PERCENT or FREESHIP", nil)
	}
	if in.Value <= 0 {
		return nil, errutil.BadRequest("value must be > 0", nil)
	}
	if in.Type == TypePercent && in.Value > 100 {
		return nil, errutil.BadRequest("percent value must be between 1 and 100", nil)
	}
	if in.StartDate != nil && in.EndDate != nil && in.StartDate.After(*in.EndDate) {
		return nil, errutil.BadRequest("start date cannot be after end date", nil)
	}

	code := in.Code
	if code == "" {
		if s.seq == nil {
			return nil, errutil.BadRequest("code is required", nil)
		}
		generated, err := s.seq.NextVoucherCode(ctx)
		if err != nil {
			zap.L().Error("failed to generate voucher code", zap.Error(err))
			return nil, errutil.Internal("failed to generate voucher code", err)
		}
		code = generated
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	v := &Voucher{
		VoucherID:     s.node.Generate().String(),
		Code:          code,
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
		Value:         in.Value,
		MaxDiscount:   in.MaxDiscount,
		MinOrderValue: in.MinOrderValue,
		UsageLimit:    in.UsageLimit,
		UsagePerUser:  in.UsagePerUser,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Active:        active,
	}

	// the unique index on code is the only duplicate guard; racing creates
	// both reach the insert and the loser surfaces here
	if err := s.voucher.Create(ctx, v); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		zap.L().Error("failed to create voucher", zap.String("code", code), zap.Error(err))
		return nil, errutil.Internal("failed to create voucher", err)
	}

	return v, nil
}

// =========================================================
// GetVoucher / ListVouchers
// =========================================================
func (s *Service) GetVoucher(ctx context.Context, code string) (*Voucher, error) {
	v, err := s.voucher.FindOne(ctx, &Voucher{Code: code})
	if err != nil {
		return nil, errutil.Internal("failed to query voucher", err)
	}
	if v == nil {
		return nil, ErrVoucherNotFound
	}
	return v, nil
}

func (s *Service) ListVouchers(ctx context.Context, onlyActive bool, limit int) ([]*Voucher, error) {
	if limit <= 0 || limit > 250 {
		limit = 50
	}

	query := &Voucher{}
	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{SortBy: "created_at", OrderBy: "desc", Allow: map[string]bool{"created_at": true}}),
		option.WithLimit(limit),
	}
	if onlyActive {
		query.Active = true
	}

	vouchers, err := s.voucher.Find(ctx, query, opts...)
	if err != nil {
		return nil, errutil.Internal("failed to list vouchers", err)
	}
	return vouchers, nil
}

// Quote is the result of a quote-time validation: the voucher and the
// discount it would yield against the given subtotal.
type Quote struct {
	Voucher  *Voucher `json:"voucher"`
	Discount int64    `json:"discount"`
}

// =========================================================
// ValidateVoucher (quote-time; mutates nothing)
// =========================================================
func (s *Service) ValidateVoucher(ctx context.Context, code string, userID *string, subtotal *int64) (*Quote, error) {
	span := trace.SpanFromContext(ctx)
	opts := []zap.Field{
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("code", code),
	}

	v, err := s.GetVoucher(ctx, code)
	if err != nil {
		return nil, err
	}

	var prior int64
	if userID != nil {
		prior, err = s.usage.Count(ctx, &VoucherUsage{VoucherID: v.VoucherID, UserID: userID})
		if err != nil {
			zap.L().With(opts...).Error("failed to count voucher usages", zap.Error(err))
			return nil, errutil.Internal("failed to count voucher usages", err)
		}
	}

	if err := Validate(v, userID, prior, subtotal, time.Now()); err != nil {
		return nil, err
	}

	var discount int64
	if subtotal != nil {
		discount = Discount(v, *subtotal)
	}

	return &Quote{Voucher: v, Discount: discount}, nil
}

// Redemption is the outcome of a committed redemption.
type Redemption struct {
	Voucher  *Voucher      `json:"voucher"`
	Usage    *VoucherUsage `json:"usage"`
	Discount int64         `json:"discount"`
}

// =========================================================
// Redeem
// =========================================================

// Redeem consumes one use of a voucher at order placement. Validation, the
// counter increment and the ledger insert all commit atomically; on any
// failure the caller sees the voucher as no longer valid and nothing is
// persisted.
func (s *Service) Redeem(ctx context.Context, code string, userID, orderID *string, subtotal int64) (*Redemption, error) {
	var redemption *Redemption
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.RedeemTx(ctx, tx, code, userID, orderID, subtotal)
		if err != nil {
			return err
		}
		redemption = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return redemption, nil
}

// RedeemTx runs the redemption inside an existing transaction so callers
// (order placement) can commit it together with their own writes.
func (s *Service) RedeemTx(ctx context.Context, tx *gorm.DB, code string, userID, orderID *string, subtotal int64) (*Redemption, error) {
	span := trace.SpanFromContext(ctx)
	opts := []zap.Field{
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("code", code),
	}

	// lock the voucher row for the rest of the transaction: concurrent
	// redemptions of the same code serialize here
	v, err := s.voucher.WithTrx(tx).FindOne(ctx, &Voucher{Code: code}, option.WithLockingUpdate())
	if err != nil {
		zap.L().With(opts...).Error("failed to query voucher", zap.Error(err))
		return nil, errutil.Internal("failed to query voucher", err)
	}
	if v == nil {
		return nil, ErrVoucherNotFound
	}

	var prior int64
	if userID != nil {
		prior, err = s.usage.WithTrx(tx).Count(ctx, &VoucherUsage{VoucherID: v.VoucherID, UserID: userID})
		if err != nil {
			zap.L().With(opts...).Error("failed to count voucher usages", zap.Error(err))
			return nil, errutil.Internal("failed to count voucher usages", err)
		}
	}

	// re-run validation at commit time; quote-time validation may be stale
	if err := Validate(v, userID, prior, &subtotal, time.Now()); err != nil {
		return nil, err
	}

	// guarded increment keeps used_count <= usage_limit even if the lock is
	// a no-op (sqlite)
	res := tx.Model(&Voucher{}).
		Where("voucher_id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", v.VoucherID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		zap.L().With(opts...).Error("failed to increment used_count", zap.Error(res.Error))
		return nil, errutil.Internal("failed to increment voucher usage", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrGlobalLimitReached
	}
	v.UsedCount++

	usage := &VoucherUsage{
		UsageID:   s.node.Generate().String(),
		VoucherID: v.VoucherID,
		UserID:    userID,
		OrderID:   orderID,
	}
	if err := s.usage.WithTrx(tx).Create(ctx, usage); err != nil {
		zap.L().With(opts...).Error("failed to insert usage ledger row", zap.Error(err))
		return nil, errutil.Internal("failed to record voucher usage", err)
	}

	return &Redemption{
		Voucher:  v,
		Usage:    usage,
		Discount: Discount(v, subtotal),
	}, nil
}
