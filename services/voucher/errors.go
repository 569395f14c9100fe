package voucher

import (
	"fmt"

	"storefront-voucher/pkg/errutil"
)

// Reason is the stable failure taxonomy. Message text may change; the reason
// kind is part of the API contract.
type Reason string

const (
	ReasonVoucherInactive     Reason = "VOUCHER_INACTIVE"
	ReasonNotYetValid         Reason = "NOT_YET_VALID"
	ReasonExpired             Reason = "EXPIRED"
	ReasonGlobalLimitReached  Reason = "GLOBAL_LIMIT_REACHED"
	ReasonBelowMinimumOrder   Reason = "BELOW_MINIMUM_ORDER"
	ReasonPerUserLimitReached Reason = "PER_USER_LIMIT_REACHED"
	ReasonVoucherNotFound     Reason = "VOUCHER_NOT_FOUND"
	ReasonDuplicateCode       Reason = "DUPLICATE_CODE"
)

// ValidationError is a user-recoverable voucher failure: the shopper can pick
// another voucher or wait. Message is the user-facing text.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Reason, e.Message)
}

func (e *ValidationError) Status() errutil.CoreStatus {
	switch e.Reason {
	case ReasonVoucherNotFound:
		return errutil.StatusNotFound
	case ReasonDuplicateCode:
		return errutil.StatusConflict
	default:
		return errutil.StatusUnprocessableEntity
	}
}

var (
	ErrVoucherInactive     = &ValidationError{ReasonVoucherInactive, "Mã giảm giá đã bị vô hiệu hóa"}
	ErrNotYetValid         = &ValidationError{ReasonNotYetValid, "Mã giảm giá chưa đến thời gian sử dụng"}
	ErrExpired             = &ValidationError{ReasonExpired, "Mã giảm giá đã hết hạn"}
	ErrGlobalLimitReached  = &ValidationError{ReasonGlobalLimitReached, "Mã giảm giá đã hết lượt sử dụng"}
	ErrBelowMinimumOrder   = &ValidationError{ReasonBelowMinimumOrder, "Đơn hàng chưa đạt giá trị tối thiểu để áp dụng mã"}
	ErrPerUserLimitReached = &ValidationError{ReasonPerUserLimitReached, "Bạn đã dùng hết số lượt cho phép của mã này"}
	ErrVoucherNotFound     = &ValidationError{ReasonVoucherNotFound, "Mã giảm giá không tồn tại"}
	ErrDuplicateCode       = &ValidationError{ReasonDuplicateCode, "Mã giảm giá đã tồn tại"}
)
