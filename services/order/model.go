package order

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Order is the minimal order record the voucher subsystem hangs off. Status
// moves pending -> paid | failed and both outcomes are terminal; retrying a
// payment means placing a new order.
type Order struct {
	OrderID     string    `gorm:"column:order_id;primaryKey" json:"orderId"`
	OrderCode   string    `gorm:"column:order_code;uniqueIndex;not null" json:"orderCode"`
	UserID      *string   `gorm:"column:user_id;index" json:"userId,omitempty"`
	Subtotal    int64     `gorm:"column:subtotal;not null" json:"subtotal"`
	Discount    int64     `gorm:"column:discount;not null;default:0" json:"discount"`
	Total       int64     `gorm:"column:total;not null" json:"total"`
	VoucherCode *string   `gorm:"column:voucher_code" json:"voucherCode,omitempty"`
	Status      Status    `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
