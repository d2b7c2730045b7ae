package domain

// Payment methods accepted at the till. OneCard is the only method that
// carries its own discount.
type PaymentMethod int

const (
	PaymentCash PaymentMethod = iota + 1
	PaymentOneCard
	PaymentBkash
	PaymentNagad
	PaymentBank
)

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentOneCard:
		return "1Card"
	case PaymentBkash:
		return "bKash"
	case PaymentNagad:
		return "Nagad"
	case PaymentBank:
		return "Bank Transfer"
	}
	return "Unknown"
}

// Valid reports whether m is one of the accepted methods.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentCash && m <= PaymentBank
}

// RequiresTransactionID reports whether checkout must collect an
// external transaction reference for this method. Only pure cash is
// exempt.
func (m PaymentMethod) RequiresTransactionID() bool {
	return m != PaymentCash
}

// OrderItem is one persisted line of an order. UnitPrice is the price
// snapshotted into the cart at add time, not the current catalog price.
type OrderItem struct {
	OrderID   int64   `db:"order_id" json:"order_id"`
	ProductID int     `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// Order is immutable once persisted; corrections are new orders.
// TotalAmount is the payable amount after all discounts, matching the
// on-disk ledger; the gross total is TotalAmount + Discount.
type Order struct {
	ID                int64         `db:"id" json:"id"`
	CustomerPhone     string        `db:"customer_phone" json:"customer_phone"`
	EmployeeID        int           `db:"employee_id" json:"employee_id"`
	Date              string        `db:"date" json:"date"`
	Items             []OrderItem   `json:"items"`
	TotalAmount       float64       `db:"total_amount" json:"total_amount"`
	Discount          float64       `db:"discount" json:"discount"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	TransactionID     string        `json:"transaction_id,omitempty"`
	ManualDiscountPct float64       `json:"manual_discount_pct"`
}

// Gross returns the pre-discount total.
func (o Order) Gross() float64 { return o.TotalAmount + o.Discount }

// IsGuest reports whether the order was an anonymous checkout.
func (o Order) IsGuest() bool { return o.CustomerPhone == GuestPhone }

// DateLayout is the timestamp format used on receipts and in the
// ledger, kept compatible with the historical data files.
const DateLayout = "2006-01-02 03:04:05 PM"
