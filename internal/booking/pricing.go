package booking

// Total computes the order total as unit price times quantity.  Prices
// are whole currency units (no cents in this market), so plain integer
// arithmetic is exact.  Non-positive inputs yield 0; the caller is
// expected to reject such orders during validation.
func Total(unitPrice int64, quantity int) int64 {
	if unitPrice <= 0 || quantity <= 0 {
		return 0
	}
	return unitPrice * int64(quantity)
}
