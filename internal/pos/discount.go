package pos

import (
	"fmt"

	"supershop/m/domain"
)

// Loyalty milestone ladder: crossing each cumulative-spend threshold
// grants a one-time 10% discount on the order that first observes it.
var Milestones = []float64{100000, 200000, 300000}

const (
	loyaltyRate = 0.10
	oneCardRate = 0.05
)

// Discounts is the breakdown computed for one order. Loyalty and
// Manual are percentages of the gross; OneCard applies to whatever
// remains after them.
type Discounts struct {
	Gross     float64
	Loyalty   float64
	Manual    float64
	ManualPct float64
	OneCard   float64
	// Milestone is the threshold consumed by the loyalty discount,
	// zero when no milestone was newly crossed.
	Milestone float64
}

// Total is the sum of all applied discounts.
func (d Discounts) Total() float64 {
	return d.Loyalty + d.Manual + d.OneCard
}

// Payable is the amount owed after discounts, floored at zero.
func (d Discounts) Payable() float64 {
	payable := d.Gross - d.Total()
	if payable < 0 {
		return 0
	}
	return payable
}

// eligibleMilestone returns the highest threshold the customer's
// pre-order spending has crossed that has not yet been consumed, or
// zero. A consumed milestone is never re-granted, even while the
// customer remains between it and the next one.
func eligibleMilestone(c domain.Customer) float64 {
	for i := len(Milestones) - 1; i >= 0; i-- {
		m := Milestones[i]
		if c.TotalSpending >= m && c.LastMilestone < m {
			return m
		}
	}
	return 0
}

// ComputeDiscounts applies, in order: the one-time loyalty milestone
// discount on the gross, the operator's manual percentage on the
// gross, and the 1Card discount on the remainder. customer is nil for
// guest checkouts. The customer record is not mutated here; the
// pipeline advances the consumed milestone when the order commits.
func ComputeDiscounts(gross float64, customer *domain.Customer, manualPct float64, method domain.PaymentMethod) (Discounts, error) {
	if manualPct < 0 || manualPct > 100 {
		return Discounts{}, fmt.Errorf("%.2f: %w", manualPct, domain.ErrInvalidDiscountPercent)
	}
	if !method.Valid() {
		return Discounts{}, fmt.Errorf("%d: %w", method, domain.ErrInvalidPaymentMethod)
	}

	d := Discounts{Gross: gross, ManualPct: manualPct}

	if customer != nil {
		if m := eligibleMilestone(*customer); m > 0 {
			d.Milestone = m
			d.Loyalty = gross * loyaltyRate
		}
	}

	d.Manual = gross * manualPct / 100

	if method == domain.PaymentOneCard {
		remaining := gross - d.Loyalty - d.Manual
		if remaining > 0 {
			d.OneCard = remaining * oneCardRate
		}
	}

	return d, nil
}
