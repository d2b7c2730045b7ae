// Package report answers aggregate queries about the sales history.
// The flat ledger and catalog are replayed into a sqlite mirror so the
// reports are plain SQL over it; the mirror is derived state and can
// be rebuilt from the text files at any time.
package report

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"supershop/m/domain"
)

// Engine runs report queries against the sqlite mirror. Construct it
// after migrations.Run has created the schema.
type Engine struct {
	db *sqlx.DB
}

func NewEngine(db *sqlx.DB) *Engine {
	return &Engine{db: db}
}

// Import replays the catalog snapshot and the ledger into the mirror,
// replacing rows already present so repeated imports are idempotent.
func (e *Engine) Import(products []domain.Product, orders []domain.Order, items []domain.OrderItem) error {
	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("%w: begin import: %v", domain.ErrPersistence, err)
	}

	productStmt, err := tx.Preparex(`INSERT OR REPLACE INTO products (id, name, category, quantity, purchase_price, sale_price, date_added) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: prepare product import: %v", domain.ErrPersistence, err)
	}
	for _, p := range products {
		if _, err := productStmt.Exec(p.ID, p.Name, p.Category, p.Quantity, p.PurchasePrice, p.SalePrice, p.DateAdded); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: import product %d: %v", domain.ErrPersistence, p.ID, err)
		}
	}

	saleStmt, err := tx.Preparex(`INSERT OR REPLACE INTO sales (id, customer_phone, employee_id, date, total_amount, discount) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: prepare sale import: %v", domain.ErrPersistence, err)
	}
	for _, o := range orders {
		if _, err := saleStmt.Exec(o.ID, o.CustomerPhone, o.EmployeeID, o.Date, o.TotalAmount, o.Discount); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: import sale %d: %v", domain.ErrPersistence, o.ID, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM sale_items`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: reset sale items: %v", domain.ErrPersistence, err)
	}
	itemStmt, err := tx.Preparex(`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: prepare item import: %v", domain.ErrPersistence, err)
	}
	for _, item := range items {
		if _, err := itemStmt.Exec(item.OrderID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: import items for sale %d: %v", domain.ErrPersistence, item.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit import: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Summary aggregates one reporting window.
type Summary struct {
	Revenue   float64 `db:"revenue"`
	Discount  float64 `db:"discount"`
	Orders    int64   `db:"orders"`
	ItemsSold int64   `db:"items_sold"`
}

// DailySales summarizes the sales whose timestamp falls on the given
// day (YYYY-MM-DD).
func (e *Engine) DailySales(day string) (Summary, error) {
	return e.windowSummary(`substr(date, 1, 10) = ?`, day)
}

// MonthlySales summarizes the sales of the given month (YYYY-MM).
func (e *Engine) MonthlySales(month string) (Summary, error) {
	return e.windowSummary(`substr(date, 1, 7) = ?`, month)
}

func (e *Engine) windowSummary(clause string, arg any) (Summary, error) {
	var s Summary
	query := `SELECT COALESCE(SUM(total_amount), 0) AS revenue,
	                 COALESCE(SUM(discount), 0) AS discount,
	                 COUNT(*) AS orders,
	                 COALESCE((SELECT SUM(si.quantity) FROM sale_items si
	                           JOIN sales s2 ON s2.id = si.sale_id WHERE ` + clause + `), 0) AS items_sold
	          FROM sales WHERE ` + clause
	if err := e.db.Get(&s, query, arg, arg); err != nil {
		return Summary{}, fmt.Errorf("%w: window summary: %v", domain.ErrPersistence, err)
	}
	return s, nil
}

// EmployeeSales is the per-operator aggregate used by the employee
// sales report.
type EmployeeSales struct {
	EmployeeID int     `db:"employee_id"`
	Orders     int64   `db:"orders"`
	Revenue    float64 `db:"revenue"`
}

func (e *Engine) SalesByEmployee() ([]EmployeeSales, error) {
	var rows []EmployeeSales
	err := e.db.Select(&rows, `SELECT employee_id, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue
	                           FROM sales GROUP BY employee_id ORDER BY revenue DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: sales by employee: %v", domain.ErrPersistence, err)
	}
	return rows, nil
}

// ProductProfit reports per-product margin over everything sold: the
// snapshotted sale price from the ledger against the catalog purchase
// price.
type ProductProfit struct {
	ProductID int     `db:"product_id"`
	Name      string  `db:"name"`
	Sold      int64   `db:"sold"`
	Revenue   float64 `db:"revenue"`
	Cost      float64 `db:"cost"`
	Profit    float64 `db:"profit"`
}

func (e *Engine) Profit() ([]ProductProfit, error) {
	var rows []ProductProfit
	err := e.db.Select(&rows, `SELECT si.product_id,
	                                  COALESCE(p.name, 'Unknown') AS name,
	                                  SUM(si.quantity) AS sold,
	                                  SUM(si.quantity * si.unit_price) AS revenue,
	                                  SUM(si.quantity * COALESCE(p.purchase_price, 0)) AS cost,
	                                  SUM(si.quantity * (si.unit_price - COALESCE(p.purchase_price, 0))) AS profit
	                           FROM sale_items si
	                           LEFT JOIN products p ON p.id = si.product_id
	                           GROUP BY si.product_id ORDER BY profit DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: profit report: %v", domain.ErrPersistence, err)
	}
	return rows, nil
}
