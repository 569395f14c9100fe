package voucher

// Discount computes the discount amount for a usable voucher against an
// order subtotal. All arithmetic is on integer VND amounts and the result is
// never negative.
func Discount(v *Voucher, subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}

	switch v.Type {
	case TypePercent:
		d := v.Value * subtotal / 100
		if v.MaxDiscount != nil && d > *v.MaxDiscount {
			d = *v.MaxDiscount
		}
		if d < 0 {
			return 0
		}
		return d
	case TypeFixed, TypeFreeship:
		// FREESHIP is currently computed against the order subtotal, same as
		// FIXED. Whether it should apply to shipping cost instead is an open
		// question with stakeholders; the contracts here carry no shipping
		// amount to compute against.
		if v.Value <= 0 {
			return 0
		}
		if v.Value > subtotal {
			return subtotal
		}
		return v.Value
	default:
		return 0
	}
}
