package cli

import (
	"errors"
	"strings"

	"supershop/m/domain"
	"supershop/m/internal/pos"
	"supershop/m/internal/receipt"
)

func (s *Shell) salesMenu() {
	for !s.eof {
		s.printf("\n=== SALES ===\n")
		s.printf("1. Add to Cart\n2. View Cart\n3. Remove from Cart\n4. Clear Cart\n5. Checkout\n6. Sales History\n7. Back\n")
		switch s.promptInt("Enter your choice: ") {
		case 1:
			id := s.promptInt("Product ID: ")
			if p, err := s.products.Get(id); err == nil {
				s.printf("%s || Price: %.2f TK || Available: %d\n", p.Name, p.SalePrice, p.Quantity)
			}
			qty := s.promptInt("Quantity: ")
			if err := s.cart.AddLine(s.products, id, qty); err != nil {
				s.fail(err)
				continue
			}
			s.printf("Item added to cart.\n")
		case 2:
			s.viewCart()
		case 3:
			id := s.promptInt("Product ID: ")
			if err := s.cart.RemoveLine(id); err != nil {
				s.fail(err)
				continue
			}
			s.printf("Item removed.\n")
		case 4:
			s.cart.Clear()
			s.printf("Cart cleared!\n")
		case 5:
			s.checkout()
		case 6:
			s.salesHistory()
		case 7:
			return
		default:
			s.printf("Invalid choice! Please try again.\n")
		}
	}
}

func (s *Shell) viewCart() {
	if s.cart.Empty() {
		s.printf("Cart is empty!\n")
		return
	}
	s.printf("\n%-6s %-20s %-10s %-10s %-10s\n", "ID", "Product", "Qty", "Price", "Subtotal")
	for _, line := range s.cart.Lines() {
		s.printf("%-6d %-20s %-10d %-10.2f %-10.2f\n",
			line.ProductID, line.Name, line.Quantity, line.UnitPrice, line.Subtotal())
	}
	s.printf("Total Amount: %.2f TK\n", s.cart.GrossTotal())
}

func (s *Shell) checkout() {
	if s.cart.Empty() {
		s.printf("Cart is empty!\n")
		return
	}

	req := pos.CheckoutRequest{Session: s.session}
	req.Phone = s.prompt("Customer phone (blank for guest): ")
	if req.Phone != "" {
		if customer, err := s.customers.Get(req.Phone); err == nil {
			s.printf("Customer found: %s (previous purchases %.2f TK)\n", customer.Name, customer.TotalSpending)
		} else {
			s.printf("New customer account will be created.\n")
			req.CustomerName = s.prompt("Customer name: ")
			req.CustomerAddress = s.prompt("Customer address: ")
		}
	}

	if strings.ToLower(s.prompt("Apply manual discount? (y/n): ")) == "y" {
		req.ManualDiscountPct = s.promptFloat("Discount percentage (0-100): ")
	}

	s.printf("\n1. Cash\n2. 1Card (5%% discount)\n3. bKash\n4. Nagad\n5. Bank Transfer\n")
	req.PaymentMethod = domain.PaymentMethod(s.promptInt("Select payment method (1-5): "))
	if req.PaymentMethod.RequiresTransactionID() && req.PaymentMethod.Valid() {
		req.TransactionID = s.prompt("Transaction ID: ")
	}

	if strings.ToLower(s.prompt("Proceed with checkout? (y/n): ")) != "y" {
		return
	}

	result, err := s.pipeline.Finalize(s.cart, req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			s.printf("Cart is empty!\n")
			return
		}
		s.fail(err)
		return
	}

	s.printf("\n=== PAYMENT SUMMARY ===\n")
	s.printf("Original Amount: %.2f TK\n", result.Discounts.Gross)
	if result.Discounts.Loyalty > 0 {
		s.printf("Loyalty Milestone %.0f reached! One-time discount (10%%): %.2f TK\n",
			result.Discounts.Milestone, result.Discounts.Loyalty)
	}
	if result.Discounts.Manual > 0 {
		s.printf("Manual Discount (%.0f%%): %.2f TK\n", result.Discounts.ManualPct, result.Discounts.Manual)
	}
	if result.Discounts.OneCard > 0 {
		s.printf("1Card Discount (5%%): %.2f TK\n", result.Discounts.OneCard)
	}
	s.printf("Final Amount: %.2f TK\n", result.Order.TotalAmount)
	s.printf("Payment Method: %s\n", result.Order.PaymentMethod)

	for _, short := range result.Shortfall {
		s.printf("Skipped product %d: requested %d, available %d\n",
			short.ProductID, short.Requested, short.Available)
	}
	for _, warn := range result.Warnings {
		s.fail(warn)
	}

	lines := make([]receipt.ReceiptLine, len(result.Order.Items))
	for i, item := range result.Order.Items {
		name := "Unknown"
		if p, err := s.products.Get(item.ProductID); err == nil {
			name = p.Name
		}
		lines[i] = receipt.ReceiptLine{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  float64(item.Quantity) * item.UnitPrice,
		}
	}
	if path, err := receipt.Generate(s.cfg.ReceiptsDir, result.Order, s.session.Name, lines); err != nil {
		s.fail(err)
	} else {
		s.printf("Receipt written to %s\n", path)
	}

	s.printf("\nCheckout completed successfully! Order ID: %d\n", result.Order.ID)
}

// salesHistory replays the ledger; non-admin operators only see their
// own orders.
func (s *Shell) salesHistory() {
	orders, err := s.ledger.Orders()
	if err != nil {
		s.fail(err)
		return
	}
	var total float64
	count := 0
	s.printf("\n%-14s %-24s %-16s %-12s %-10s\n", "ID", "Date", "Phone", "Amount", "Discount")
	for _, order := range orders {
		if !s.session.IsAdmin() && order.EmployeeID != s.session.EmployeeID {
			continue
		}
		s.printf("%-14d %-24s %-16s %-12.2f %-10.2f\n",
			order.ID, order.Date, order.CustomerPhone, order.TotalAmount, order.Discount)
		total += order.TotalAmount
		count++
	}
	s.printf("Orders: %d, Total Sales: %.2f TK\n", count, total)
}
