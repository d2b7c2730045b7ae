package domain

// GuestPhone is the sentinel customer key for anonymous checkouts.
// Orders tagged with it never create or mutate a customer record.
const GuestPhone = "GUEST"

type Customer struct {
	Phone         string  `db:"phone" json:"phone"`
	Name          string  `db:"name" json:"name"`
	Address       string  `db:"address" json:"address"`
	TotalSpending float64 `db:"total_spending" json:"total_spending"`
	LoyaltyPoints int     `db:"loyalty_points" json:"loyalty_points"`
	// LastMilestone is the highest loyalty milestone whose one-time
	// discount this customer has already consumed.
	LastMilestone float64 `db:"last_milestone" json:"last_milestone"`
}

// Points derives loyalty points from cumulative spending.
func Points(totalSpending float64) int {
	return int(totalSpending / 100)
}
