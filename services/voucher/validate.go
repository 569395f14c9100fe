package voucher

import "time"

// Validate decides whether a voucher is usable against an optional user and
// an optional order subtotal. priorUses is the number of ledger rows already
// recorded for userID on this voucher; callers pass 0 when userID is nil.
// Checks run in a fixed order and the first failure wins.
//
// The function is pure: it reads only its arguments, so calling it twice
// with identical inputs always yields the same result.
func Validate(v *Voucher, userID *string, priorUses int64, subtotal *int64, now time.Time) error {
	if !v.Active {
		return ErrVoucherInactive
	}

	// window bounds are inclusive: now == start and now == end both pass
	if v.StartDate != nil && now.Before(*v.StartDate) {
		return ErrNotYetValid
	}
	if v.EndDate != nil && now.After(*v.EndDate) {
		return ErrExpired
	}

	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return ErrGlobalLimitReached
	}

	if v.MinOrderValue != nil && subtotal != nil && *subtotal < *v.MinOrderValue {
		return ErrBelowMinimumOrder
	}

	if userID != nil && v.UsagePerUser != nil && priorUses >= *v.UsagePerUser {
		return ErrPerUserLimitReached
	}

	return nil
}
