package pos

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supershop/m/domain"
	"supershop/m/internal/ledger"
	"supershop/m/internal/store"
)

type fixture struct {
	dir       string
	catalog   *store.ProductStore
	customers *store.CustomerStore
	employees *store.EmployeeStore
	ledger    *ledger.TextLedger
	pipeline  *Pipeline
	session   domain.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	catalog := store.NewProductStore(filepath.Join(dir, "products.txt"))
	customers := store.NewCustomerStore(filepath.Join(dir, "customers.txt"))
	employees := store.NewEmployeeStore(filepath.Join(dir, "employees.txt"))
	require.NoError(t, catalog.Load())
	require.NoError(t, customers.Load())
	require.NoError(t, employees.Load())

	require.NoError(t, catalog.Add(domain.Product{
		ID: 1, Name: "Rice 5kg", Category: "Grocery", Quantity: 20,
		PurchasePrice: 400, SalePrice: 500, DateAdded: "2026-01-01",
	}))
	require.NoError(t, catalog.Add(domain.Product{
		ID: 2, Name: "Milk 1L", Category: "Dairy", Quantity: 5,
		PurchasePrice: 80, SalePrice: 100, DateAdded: "2026-01-01",
	}))
	require.NoError(t, employees.Add(domain.Employee{
		ID: 1, Name: "Cashier", Username: "cashier", Password: "x", Role: domain.RoleEmployee,
	}))

	orderLedger := ledger.NewTextLedger(filepath.Join(dir, "sales.txt"), filepath.Join(dir, "sales_items.txt"))
	pipeline := &Pipeline{
		Products:  catalog,
		Customers: customers,
		Employees: employees,
		Ledger:    orderLedger,
		Now:       func() time.Time { return time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC) },
	}

	return &fixture{
		dir:       dir,
		catalog:   catalog,
		customers: customers,
		employees: employees,
		ledger:    orderLedger,
		pipeline:  pipeline,
		session:   domain.Session{EmployeeID: 1, Name: "Cashier", Role: domain.RoleEmployee},
	}
}

func TestFinalizeEmptyCartRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Finalize(NewCart(), CheckoutRequest{
		Session: f.session, PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	// No order record, no ledger append, no catalog mutation.
	_, statErr := os.Stat(filepath.Join(f.dir, "sales.txt"))
	assert.True(t, os.IsNotExist(statErr))
	p, err := f.catalog.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Quantity)
}

func TestFinalizeGuestCheckout(t *testing.T) {
	f := newFixture(t)
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 2))

	result, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, domain.GuestPhone, result.Order.CustomerPhone)
	assert.True(t, result.Order.IsGuest())
	assert.InDelta(t, 1000, result.Order.TotalAmount, 1e-9)
	assert.Empty(t, f.customers.List(), "guest checkout must not create a customer")
	assert.True(t, cart.Empty(), "cart is cleared after checkout")
}

func TestFinalizeDecrementsStockAcrossSales(t *testing.T) {
	f := newFixture(t)

	quantities := []int{3, 2, 4}
	for _, qty := range quantities {
		cart := NewCart()
		require.NoError(t, cart.AddLine(f.catalog, 1, qty))
		_, err := f.pipeline.Finalize(cart, CheckoutRequest{
			Session: f.session, PaymentMethod: domain.PaymentCash,
		})
		require.NoError(t, err)
	}

	p, err := f.catalog.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 20-3-2-4, p.Quantity)

	// The persisted snapshot agrees with memory.
	reloaded := store.NewProductStore(filepath.Join(f.dir, "products.txt"))
	require.NoError(t, reloaded.Load())
	p, err = reloaded.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 11, p.Quantity)
}

func TestFinalizeCreatesCustomerOnFirstPurchase(t *testing.T) {
	f := newFixture(t)
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 1))

	result, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session:         f.session,
		Phone:           "01711111111",
		CustomerName:    "Rahim",
		CustomerAddress: "Dhaka",
		PaymentMethod:   domain.PaymentCash,
	})
	require.NoError(t, err)

	c, err := f.customers.Get("01711111111")
	require.NoError(t, err)
	assert.Equal(t, "Rahim", c.Name)
	assert.InDelta(t, result.Order.TotalAmount, c.TotalSpending, 1e-9)
	assert.Equal(t, domain.Points(c.TotalSpending), c.LoyaltyPoints)
}

func TestFinalizeMilestoneGrantedOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.customers.Add(domain.Customer{
		Phone: "01722222222", Name: "Karim", TotalSpending: 100000,
	}))

	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 2))
	result, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, Phone: "01722222222", PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, result.Discounts.Loyalty, 1e-9, "10%% of the 1000 gross")
	assert.InDelta(t, 900, result.Order.TotalAmount, 1e-9)

	c, err := f.customers.Get("01722222222")
	require.NoError(t, err)
	assert.InDelta(t, 100000, c.LastMilestone, 1e-9)

	// Still above milestone 1, below milestone 2: no repeat discount.
	cart = NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 2))
	result, err = f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, Phone: "01722222222", PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)
	assert.Zero(t, result.Discounts.Loyalty)
	assert.InDelta(t, 1000, result.Order.TotalAmount, 1e-9)
}

func TestFinalizeMissingTransactionID(t *testing.T) {
	f := newFixture(t)
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 1))

	_, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, PaymentMethod: domain.PaymentBkash,
	})
	assert.ErrorIs(t, err, domain.ErrMissingTransactionID)

	// Cash needs no transaction id.
	_, err = f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, PaymentMethod: domain.PaymentCash,
	})
	assert.NoError(t, err)
}

func TestFinalizeInvalidDiscountLeavesNoCustomer(t *testing.T) {
	f := newFixture(t)
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 1))

	_, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session:           f.session,
		Phone:             "01799999999",
		CustomerName:      "Salma",
		ManualDiscountPct: 150,
		PaymentMethod:     domain.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscountPercent)

	// The rejected checkout must not have registered the customer.
	_, err = f.customers.Get("01799999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.customers.List())
}

func TestFinalizeDiscountCappedAtGross(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.customers.Add(domain.Customer{
		Phone: "01733333333", Name: "Jamal", TotalSpending: 100000,
	}))

	// Milestone 10% plus a 100% manual discount would sum past the
	// gross; the payable clamps to zero and the recorded discount must
	// equal the gross so the ledger stays balanced.
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 2))
	result, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session:           f.session,
		Phone:             "01733333333",
		ManualDiscountPct: 100,
		PaymentMethod:     domain.PaymentCash,
	})
	require.NoError(t, err)

	assert.Zero(t, result.Order.TotalAmount)
	assert.InDelta(t, 1000, result.Order.Discount, 1e-9)
	assert.InDelta(t, 1000, result.Order.Gross(), 1e-9)

	orders, err := f.ledger.Orders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.InDelta(t, orders[0].TotalAmount+orders[0].Discount, 1000, 0.01)
}

func TestFinalizeSkipsShortfallLines(t *testing.T) {
	f := newFixture(t)
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 2))
	require.NoError(t, cart.AddLine(f.catalog, 2, 5))

	// Stock for product 2 drains between add-to-cart and checkout.
	require.NoError(t, f.catalog.Decrement(2, 4))
	require.NoError(t, f.catalog.SaveAll())

	result, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	require.Len(t, result.Shortfall, 1)
	assert.Equal(t, 2, result.Shortfall[0].ProductID)
	assert.Equal(t, 5, result.Shortfall[0].Requested)
	assert.Equal(t, 1, result.Shortfall[0].Available)

	// The order carries only the fulfilled line.
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, 1, result.Order.Items[0].ProductID)
	assert.InDelta(t, 1000, result.Order.TotalAmount, 1e-9)
}

func TestFinalizeOrderIDsUniqueWithinSecond(t *testing.T) {
	f := newFixture(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		cart := NewCart()
		require.NoError(t, cart.AddLine(f.catalog, 1, 1))
		result, err := f.pipeline.Finalize(cart, CheckoutRequest{
			Session: f.session, PaymentMethod: domain.PaymentCash,
		})
		require.NoError(t, err)
		ids = append(ids, result.Order.ID)
	}

	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])
}

func TestFinalizeUpdatesEmployeeTotal(t *testing.T) {
	f := newFixture(t)
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 2))

	result, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, ManualDiscountPct: 10, PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	e, err := f.employees.Get(1)
	require.NoError(t, err)
	assert.InDelta(t, result.Order.TotalAmount, e.TotalSales, 1e-9)
	assert.InDelta(t, 900, e.TotalSales, 1e-9)
}

func TestFinalizeAppendsLedger(t *testing.T) {
	f := newFixture(t)
	cart := NewCart()
	require.NoError(t, cart.AddLine(f.catalog, 1, 2))
	require.NoError(t, cart.AddLine(f.catalog, 2, 1))

	result, err := f.pipeline.Finalize(cart, CheckoutRequest{
		Session: f.session, PaymentMethod: domain.PaymentOneCard, TransactionID: "TXN-1",
	})
	require.NoError(t, err)

	orders, err := f.ledger.Orders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, result.Order.ID, orders[0].ID)
	assert.InDelta(t, result.Order.TotalAmount, orders[0].TotalAmount, 0.01)
	assert.InDelta(t, result.Order.Discount, orders[0].Discount, 0.01)

	items, err := f.ledger.ItemsFor(result.Order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 500, items[0].UnitPrice, 1e-9)
}
