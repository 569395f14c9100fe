package payment

import (
	"context"
	"net/url"

	"storefront-voucher/pkg/config"
	"storefront-voucher/services/order"

	"github.com/go-resty/resty/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type State string

const (
	StatePending State = "pending"
	StateSuccess State = "success"
	StateFailure State = "failure"
)

// Result is what the storefront renders after a payment return. Success and
// failure are terminal; pending means the verifier could not settle the
// payment yet and the shopper retries by going back to checkout.
type Result struct {
	State     State  `json:"state"`
	OrderCode string `json:"orderCode"`
	Message   string `json:"message"`
}

type verifyResponse struct {
	Success   bool   `json:"success"`
	OrderCode string `json:"orderCode"`
	Message   string `json:"message"`
}

type Service struct {
	client    *resty.Client
	verifyURL string

	orders *order.Service
}

type ServiceParams struct {
	fx.In
	Config *config.Config
	Orders *order.Service
}

func NewService(p ServiceParams) *Service {
	client := resty.New().
		SetTimeout(p.Config.Payment.Timeout).
		SetRetryCount(0)

	return &Service{
		client:    client,
		verifyURL: p.Config.Payment.VerifyURL,
		orders:    p.Orders,
	}
}

// VerifyReturn forwards the provider's callback query verbatim to the
// verification endpoint and reconciles the matching order. No signature
// checking happens here; the verifier owns that.
func (s *Service) VerifyReturn(ctx context.Context, query url.Values) *Result {
	var out verifyResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetResult(&out).
		Get(s.verifyURL)

	if err != nil || !resp.IsSuccess() {
		zap.L().Warn("payment verification unavailable", zap.Error(err))
		return &Result{
			State:   StatePending,
			Message: "Chưa xác nhận được kết quả thanh toán, vui lòng thử lại sau",
		}
	}

	if out.OrderCode == "" {
		zap.L().Warn("payment verifier returned no order code")
		return &Result{
			State:   StatePending,
			Message: "Chưa xác nhận được kết quả thanh toán, vui lòng thử lại sau",
		}
	}

	if out.Success {
		if _, err := s.orders.MarkPaid(ctx, out.OrderCode); err != nil {
			zap.L().Error("failed to mark order paid", zap.String("order_code", out.OrderCode), zap.Error(err))
		}
		return &Result{
			State:     StateSuccess,
			OrderCode: out.OrderCode,
			Message:   out.Message,
		}
	}

	if _, err := s.orders.MarkFailed(ctx, out.OrderCode); err != nil {
		zap.L().Error("failed to mark order failed", zap.String("order_code", out.OrderCode), zap.Error(err))
	}
	return &Result{
		State:     StateFailure,
		OrderCode: out.OrderCode,
		Message:   out.Message,
	}
}
