package voucher

import (
	"time"

	"gorm.io/datatypes"
)

type Type string

const (
	TypeFixed    Type = "FIXED"
	TypePercent  Type = "PERCENT"
	TypeFreeship Type = "FREESHIP"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFixed, TypePercent, TypeFreeship:
		return true
	default:
		return false
	}
}

// Voucher is a discount code with usage constraints. Value is an integer VND
// amount for FIXED/FREESHIP and a 1-100 percentage for PERCENT. UsedCount is
// the single source of truth for global consumption and is only ever written
// by the redemption transaction.
type Voucher struct {
	VoucherID     string     `gorm:"column:voucher_id;primaryKey" json:"voucherId"`
	Code          string     `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Title         string     `gorm:"column:title;not null" json:"title"`
	Description   string     `gorm:"column:description" json:"description,omitempty"`
	Type          Type       `gorm:"column:type;not null" json:"type"`
	Value         int64      `gorm:"column:value;not null;default:0" json:"value"`
	MaxDiscount   *int64     `gorm:"column:max_discount" json:"maxDiscount,omitempty"`
	MinOrderValue *int64     `gorm:"column:min_order_value" json:"minOrderValue,omitempty"`
	UsageLimit    *int64     `gorm:"column:usage_limit" json:"usageLimit,omitempty"`
	UsedCount     int64      `gorm:"column:used_count;not null;default:0" json:"usedCount"`
	UsagePerUser  *int64     `gorm:"column:usage_per_user" json:"usagePerUser,omitempty"`
	StartDate     *time.Time `gorm:"column:start_date" json:"startDate,omitempty"`
	EndDate       *time.Time `gorm:"column:end_date" json:"endDate,omitempty"`
	Active        bool       `gorm:"column:active;default:true" json:"active"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	// Relations
	Usages []VoucherUsage `gorm:"foreignKey:VoucherID;references:VoucherID;constraint:OnDelete:CASCADE" json:"-"`
}

// VoucherUsage is one row of the append-only redemption ledger. A NULL
// UserID is a guest checkout. Per-user limits are enforced by counting these
// rows, never by a stored counter. Rows are created inside the redemption
// transaction and never updated or deleted.
type VoucherUsage struct {
	UsageID   string         `gorm:"column:usage_id;primaryKey" json:"usageId"`
	VoucherID string         `gorm:"column:voucher_id;index;not null" json:"voucherId"`
	UserID    *string        `gorm:"column:user_id;index" json:"userId,omitempty"`
	OrderID   *string        `gorm:"column:order_id" json:"orderId,omitempty"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
