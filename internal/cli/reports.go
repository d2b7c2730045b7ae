package cli

import (
	"time"

	"supershop/m/internal/report"
)

func (s *Shell) reportMenu() {
	for !s.eof {
		s.printf("\n=== REPORTS ===\n")
		s.printf("1. Daily Sales\n2. Monthly Sales\n3. Employee Sales\n4. Profit Report\n5. Export Sales (CSV)\n6. Back\n")
		switch s.promptInt("Enter your choice: ") {
		case 1:
			if !s.refreshMirror() {
				continue
			}
			summary, err := s.reports.DailySales(time.Now().Format("2006-01-02"))
			if err != nil {
				s.fail(err)
				continue
			}
			s.printSummary("Today", summary)
		case 2:
			if !s.refreshMirror() {
				continue
			}
			summary, err := s.reports.MonthlySales(time.Now().Format("2006-01"))
			if err != nil {
				s.fail(err)
				continue
			}
			s.printSummary("This month", summary)
		case 3:
			s.employeeSales()
		case 4:
			s.profitReport()
		case 5:
			s.exportSales()
		case 6:
			return
		default:
			s.printf("Invalid choice! Please try again.\n")
		}
	}
}

// refreshMirror replays the current catalog and ledger into the sqlite
// mirror before querying it.
func (s *Shell) refreshMirror() bool {
	orders, err := s.ledger.Orders()
	if err != nil {
		s.fail(err)
		return false
	}
	items, err := s.ledger.Items()
	if err != nil {
		s.fail(err)
		return false
	}
	if err := s.reports.Import(s.products.List(), orders, items); err != nil {
		s.fail(err)
		return false
	}
	return true
}

func (s *Shell) printSummary(label string, summary report.Summary) {
	s.printf("%s: %d orders, %d items sold, revenue %.2f TK, discounts %.2f TK\n",
		label, summary.Orders, summary.ItemsSold, summary.Revenue, summary.Discount)
}

func (s *Shell) employeeSales() {
	if !s.refreshMirror() {
		return
	}
	rows, err := s.reports.SalesByEmployee()
	if err != nil {
		s.fail(err)
		return
	}
	s.printf("\n%-10s %-24s %-10s %-12s\n", "ID", "Name", "Orders", "Revenue")
	for _, row := range rows {
		name := "Unknown"
		if e, err := s.employees.Get(row.EmployeeID); err == nil {
			name = e.Name
		}
		s.printf("%-10d %-24s %-10d %-12.2f\n", row.EmployeeID, name, row.Orders, row.Revenue)
	}
}

func (s *Shell) profitReport() {
	if !s.refreshMirror() {
		return
	}
	rows, err := s.reports.Profit()
	if err != nil {
		s.fail(err)
		return
	}
	var total float64
	s.printf("\n%-8s %-20s %-8s %-12s %-12s %-12s\n", "ID", "Product", "Sold", "Revenue", "Cost", "Profit")
	for _, row := range rows {
		s.printf("%-8d %-20s %-8d %-12.2f %-12.2f %-12.2f\n",
			row.ProductID, row.Name, row.Sold, row.Revenue, row.Cost, row.Profit)
		total += row.Profit
	}
	s.printf("Total profit: %.2f TK\n", total)
}

func (s *Shell) exportSales() {
	orders, err := s.ledger.Orders()
	if err != nil {
		s.fail(err)
		return
	}
	stamp := time.Now().Format("20060102_150405")
	path, err := report.WriteSalesCSV(s.cfg.ReportsDir, orders, stamp)
	if err != nil {
		s.fail(err)
		return
	}
	s.printf("Sales report written to %s\n", path)
}
