package cli

import (
	"time"

	"supershop/m/domain"
	"supershop/m/internal/report"
)

func (s *Shell) customerMenu() {
	for !s.eof {
		s.printf("\n=== CUSTOMER MANAGEMENT ===\n")
		s.printf("1. Add Customer\n2. View Customer List\n3. Search Customer\n4. Customer Details\n5. Update Customer\n6. Export Customer List (CSV)\n7. Back\n")
		switch s.promptInt("Enter your choice: ") {
		case 1:
			s.addCustomer()
		case 2:
			s.viewCustomers()
		case 3:
			s.searchCustomer()
		case 4:
			s.customerDetails()
		case 5:
			s.updateCustomer()
		case 6:
			s.exportCustomers()
		case 7:
			return
		default:
			s.printf("Invalid choice! Please try again.\n")
		}
	}
}

func (s *Shell) addCustomer() {
	c := domain.Customer{Phone: s.prompt("Phone Number: ")}
	c.Name = s.prompt("Name: ")
	c.Address = s.prompt("Address: ")
	if err := s.customers.Add(c); err != nil {
		s.fail(err)
		return
	}
	s.printf("Customer added successfully!\n")
}

func (s *Shell) viewCustomers() {
	customers := s.customers.List()
	if len(customers) == 0 {
		s.printf("No customers registered!\n")
		return
	}
	s.printf("\n%-15s %-20s %-15s %-15s\n", "Phone", "Name", "Total Spend", "Loyalty Points")
	for _, c := range customers {
		s.printf("%-15s %-20s %-15.2f %-15d\n", c.Phone, c.Name, c.TotalSpending, c.LoyaltyPoints)
	}
}

func (s *Shell) searchCustomer() {
	phone := s.prompt("Phone Number: ")
	c, err := s.customers.Get(phone)
	if err != nil {
		s.fail(err)
		return
	}
	s.printf("Name: %s\nAddress: %s\nTotal Spend: %.2f TK\nLoyalty Points: %d\nLast Milestone: %.0f\n",
		c.Name, c.Address, c.TotalSpending, c.LoyaltyPoints, c.LastMilestone)
}

// customerDetails joins the customer record with their order history
// from the ledger.
func (s *Shell) customerDetails() {
	phone := s.prompt("Phone Number: ")
	c, err := s.customers.Get(phone)
	if err != nil {
		s.fail(err)
		return
	}
	s.printf("Name: %s, Total Spend: %.2f TK, Points: %d\n", c.Name, c.TotalSpending, c.LoyaltyPoints)

	orders, err := s.ledger.Orders()
	if err != nil {
		s.fail(err)
		return
	}
	s.printf("\nOrder history:\n")
	found := false
	for _, order := range orders {
		if order.CustomerPhone != phone {
			continue
		}
		s.printf("%d\t%s\t%.2f TK (discount %.2f)\n", order.ID, order.Date, order.TotalAmount, order.Discount)
		found = true
	}
	if !found {
		s.printf("No orders on record.\n")
	}
}

func (s *Shell) updateCustomer() {
	phone := s.prompt("Phone Number: ")
	c, err := s.customers.Get(phone)
	if err != nil {
		s.fail(err)
		return
	}
	if name := s.prompt("Name [" + c.Name + "]: "); name != "" {
		c.Name = name
	}
	if address := s.prompt("Address [" + c.Address + "]: "); address != "" {
		c.Address = address
	}
	if err := s.customers.Update(c); err != nil {
		s.fail(err)
		return
	}
	s.printf("Customer updated.\n")
}

func (s *Shell) exportCustomers() {
	stamp := time.Now().Format("20060102_150405")
	path, err := report.WriteCustomersCSV(s.cfg.ReportsDir, s.customers.List(), stamp)
	if err != nil {
		s.fail(err)
		return
	}
	s.printf("Customer list written to %s\n", path)
}
