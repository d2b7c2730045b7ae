package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"supershop/m/domain"
)

// WriteSalesCSV exports the order headers to a CSV file under dir and
// returns the written path.
func WriteSalesCSV(dir string, orders []domain.Order, stamp string) (string, error) {
	path := filepath.Join(dir, "sales_report_"+stamp+".csv")
	rows := make([][]string, 0, len(orders)+1)
	rows = append(rows, []string{"order_id", "customer_phone", "employee_id", "date", "total_amount", "discount"})
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.FormatInt(o.ID, 10),
			o.CustomerPhone,
			strconv.Itoa(o.EmployeeID),
			o.Date,
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			strconv.FormatFloat(o.Discount, 'f', 2, 64),
		})
	}
	return path, writeCSV(path, rows)
}

// WriteCustomersCSV exports the customer list to a CSV file under dir
// and returns the written path.
func WriteCustomersCSV(dir string, customers []domain.Customer, stamp string) (string, error) {
	path := filepath.Join(dir, "customer_list_"+stamp+".csv")
	rows := make([][]string, 0, len(customers)+1)
	rows = append(rows, []string{"phone", "name", "address", "total_spending", "loyalty_points"})
	for _, c := range customers {
		rows = append(rows, []string{
			c.Phone,
			c.Name,
			c.Address,
			strconv.FormatFloat(c.TotalSpending, 'f', 2, 64),
			strconv.Itoa(c.LoyaltyPoints),
		})
	}
	return path, writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrPersistence, filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrPersistence, path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, path, err)
	}
	return nil
}
