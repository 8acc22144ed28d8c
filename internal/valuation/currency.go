package valuation

// Rates holds the exchange rates the engine needs to express every holding
// in the reporting currency. It is read-only snapshot data supplied by the
// caller (see models.Settings).
type Rates struct {
	USDToINR float64
}

// ToINR converts an amount in the given currency to rupees. Amounts already
// in INR (or any unrecognized currency) pass through unchanged. A missing or
// non-positive rate behaves as 1 so a misconfigured settings row never zeroes
// out a portfolio.
func (r Rates) ToINR(amount float64, currency string) float64 {
	if currency != "USD" {
		return amount
	}
	rate := r.USDToINR
	if rate <= 0 {
		rate = 1
	}
	return amount * rate
}
