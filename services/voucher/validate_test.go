package voucher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptrInt64(v int64) *int64        { return &v }
func ptrStr(s string) *string        { return &s }
func ptrTime(t time.Time) *time.Time { return &t }

func activeVoucher() *Voucher {
	return &Voucher{
		VoucherID: "v1",
		Code:      "TEST",
		Title:     "Test voucher",
		Type:      TypeFixed,
		Value:     10_000,
		Active:    true,
	}
}

func TestValidateInactive(t *testing.T) {
	v := activeVoucher()
	v.Active = false

	err := Validate(v, nil, 0, nil, time.Now())
	require.ErrorIs(t, err, ErrVoucherInactive)
}

func TestValidateNotYetValid(t *testing.T) {
	v := activeVoucher()
	v.StartDate = ptrTime(time.Now().Add(time.Hour))

	err := Validate(v, nil, 0, nil, time.Now())
	require.ErrorIs(t, err, ErrNotYetValid)
}

func TestValidateExpired(t *testing.T) {
	v := activeVoucher()
	v.EndDate = ptrTime(time.Now().Add(-time.Hour))

	// expired regardless of any other field
	v.UsageLimit = ptrInt64(100)
	v.MinOrderValue = ptrInt64(1)

	err := Validate(v, nil, 0, ptrInt64(1_000_000), time.Now())
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidateWindowBoundsInclusive(t *testing.T) {
	now := time.Now()
	v := activeVoucher()
	v.StartDate = ptrTime(now)
	v.EndDate = ptrTime(now)

	require.NoError(t, Validate(v, nil, 0, nil, now))
}

func TestValidateGlobalLimitReached(t *testing.T) {
	v := activeVoucher()
	v.UsageLimit = ptrInt64(5)
	v.UsedCount = 5

	err := Validate(v, nil, 0, nil, time.Now())
	require.ErrorIs(t, err, ErrGlobalLimitReached)
}

func TestValidateBelowMinimumOrder(t *testing.T) {
	v := activeVoucher()
	v.MinOrderValue = ptrInt64(200_000)

	err := Validate(v, nil, 0, ptrInt64(150_000), time.Now())
	require.ErrorIs(t, err, ErrBelowMinimumOrder)

	// no subtotal provided: the check is skipped
	require.NoError(t, Validate(v, nil, 0, nil, time.Now()))
}

func TestValidatePerUserLimitReached(t *testing.T) {
	v := activeVoucher()
	v.UsagePerUser = ptrInt64(1)

	err := Validate(v, ptrStr("user-1"), 1, nil, time.Now())
	require.ErrorIs(t, err, ErrPerUserLimitReached)

	// guest: per-user cap cannot apply
	require.NoError(t, Validate(v, nil, 0, nil, time.Now()))
}

func TestValidateCheckOrderFirstFailureWins(t *testing.T) {
	// an inactive, expired, exhausted voucher reports inactive first
	v := activeVoucher()
	v.Active = false
	v.EndDate = ptrTime(time.Now().Add(-time.Hour))
	v.UsageLimit = ptrInt64(1)
	v.UsedCount = 1

	err := Validate(v, nil, 0, nil, time.Now())
	require.ErrorIs(t, err, ErrVoucherInactive)
}

func TestValidateIdempotent(t *testing.T) {
	v := activeVoucher()
	v.UsageLimit = ptrInt64(10)
	v.UsedCount = 3
	now := time.Now()

	first := Validate(v, ptrStr("user-1"), 2, ptrInt64(500_000), now)
	second := Validate(v, ptrStr("user-1"), 2, ptrInt64(500_000), now)

	require.Equal(t, first, second)
	require.Equal(t, int64(3), v.UsedCount) // no hidden mutation
}
