package pos

import (
	"fmt"
	"time"

	"supershop/m/domain"
	"supershop/m/internal/ledger"
	"supershop/m/internal/store"
)

// Pipeline finalizes sales against the catalog, the customer ledger,
// the employee store and the order ledger. Single-operator: callers
// must serialize access.
type Pipeline struct {
	Products  *store.ProductStore
	Customers *store.CustomerStore
	Employees *store.EmployeeStore
	Ledger    ledger.Writer

	// Now is replaceable in tests; defaults to time.Now.
	Now func() time.Time

	lastOrderID int64
}

// CheckoutRequest carries everything the operator supplied for one
// sale. Phone may be empty for an anonymous checkout.
type CheckoutRequest struct {
	Session           domain.Session
	Phone             string
	CustomerName      string
	CustomerAddress   string
	ManualDiscountPct float64
	PaymentMethod     domain.PaymentMethod
	TransactionID     string
}

// Shortfall reports a cart line skipped at the final stock check.
type Shortfall struct {
	ProductID int
	Requested int
	Available int
}

// Result is the outcome of a committed checkout. Warnings hold
// persistence failures that occurred after the ledger commit point;
// the in-memory state they describe is correct and will be rewritten
// on the next successful save.
type Result struct {
	Order     domain.Order
	Discounts Discounts
	Shortfall []Shortfall
	Warnings  []error
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// nextOrderID derives a time-based identifier, bumping past the last
// one issued so two checkouts in the same second stay unique.
func (p *Pipeline) nextOrderID(t time.Time) int64 {
	id := t.Unix()
	if id <= p.lastOrderID {
		id = p.lastOrderID + 1
	}
	p.lastOrderID = id
	return id
}

// Finalize commits the sale. Validation failures abort with no state
// touched. The ledger append is the commit point: if it fails the
// checkout aborts before any in-memory mutation. Later snapshot-save
// failures are collected as warnings rather than rolled back.
func (p *Pipeline) Finalize(cart *Cart, req CheckoutRequest) (*Result, error) {
	if cart.Empty() {
		return nil, domain.ErrEmptyCart
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%d: %w", req.PaymentMethod, domain.ErrInvalidPaymentMethod)
	}
	if req.PaymentMethod.RequiresTransactionID() && req.TransactionID == "" {
		return nil, domain.ErrMissingTransactionID
	}
	// Checked again inside ComputeDiscounts, but it must fail here,
	// before a first-purchase customer record is created.
	if req.ManualDiscountPct < 0 || req.ManualDiscountPct > 100 {
		return nil, fmt.Errorf("%.2f: %w", req.ManualDiscountPct, domain.ErrInvalidDiscountPercent)
	}
	if _, err := p.Employees.Get(req.Session.EmployeeID); err != nil {
		return nil, err
	}

	customer, err := p.resolveCustomer(req)
	if err != nil {
		return nil, err
	}

	// Final stock check. Lines that no longer fit are skipped and
	// reported rather than aborting the whole order.
	var (
		fulfilled []Line
		shortfall []Shortfall
	)
	for _, line := range cart.Lines() {
		product, err := p.Products.Get(line.ProductID)
		if err != nil || product.Quantity < line.Quantity {
			available := 0
			if err == nil {
				available = product.Quantity
			}
			shortfall = append(shortfall, Shortfall{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: available,
			})
			continue
		}
		fulfilled = append(fulfilled, line)
	}
	if len(fulfilled) == 0 {
		return nil, fmt.Errorf("no cart line can be fulfilled: %w", domain.ErrInsufficientStock)
	}

	var gross float64
	for _, line := range fulfilled {
		gross += line.Subtotal()
	}

	discounts, err := ComputeDiscounts(gross, customer, req.ManualDiscountPct, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// The persisted discount is the amount actually forgiven, so
	// gross == payable + discount holds even when the raw discount
	// sum exceeds the gross and payable clamps to zero.
	forgiven := discounts.Total()
	if forgiven > gross {
		forgiven = gross
	}

	now := p.now()
	order := domain.Order{
		ID:                p.nextOrderID(now),
		CustomerPhone:     phoneOrGuest(req.Phone),
		EmployeeID:        req.Session.EmployeeID,
		Date:              now.Format(domain.DateLayout),
		TotalAmount:       discounts.Payable(),
		Discount:          forgiven,
		PaymentMethod:     req.PaymentMethod,
		TransactionID:     req.TransactionID,
		ManualDiscountPct: req.ManualDiscountPct,
	}
	for _, line := range fulfilled {
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := p.Ledger.Append(order); err != nil {
		return nil, err
	}

	result := &Result{Order: order, Discounts: discounts, Shortfall: shortfall}

	for _, line := range fulfilled {
		// Validated above; a failure here means a bug, not bad input.
		if err := p.Products.Decrement(line.ProductID, line.Quantity); err != nil {
			result.Warnings = append(result.Warnings, err)
		}
	}
	if err := p.Products.SaveAll(); err != nil {
		result.Warnings = append(result.Warnings, err)
	}

	if customer != nil {
		customer.TotalSpending += order.TotalAmount
		customer.LoyaltyPoints = domain.Points(customer.TotalSpending)
		if discounts.Milestone > 0 {
			customer.LastMilestone = discounts.Milestone
		}
		if err := p.Customers.Update(*customer); err != nil {
			result.Warnings = append(result.Warnings, err)
		}
	}

	if err := p.Employees.AddSales(req.Session.EmployeeID, order.TotalAmount); err != nil {
		result.Warnings = append(result.Warnings, err)
	}

	cart.Clear()
	return result, nil
}

// resolveCustomer looks up the customer for the request, creating the
// record on first purchase. Guest checkouts resolve to nil and touch
// no customer state.
func (p *Pipeline) resolveCustomer(req CheckoutRequest) (*domain.Customer, error) {
	if phoneOrGuest(req.Phone) == domain.GuestPhone {
		return nil, nil
	}
	customer, err := p.Customers.Get(req.Phone)
	if err == nil {
		return &customer, nil
	}
	customer = domain.Customer{
		Phone:   req.Phone,
		Name:    req.CustomerName,
		Address: req.CustomerAddress,
	}
	if err := p.Customers.Add(customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func phoneOrGuest(phone string) string {
	if phone == "" {
		return domain.GuestPhone
	}
	return phone
}
