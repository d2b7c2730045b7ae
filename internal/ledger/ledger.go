// Package ledger persists finalized orders to the append-only sales
// logs: one line per order header, one line per line item, joined by
// order id at read time.
package ledger

import (
	"fmt"
	"strconv"

	"supershop/m/domain"
	"supershop/m/internal/flatfile"
)

// Writer is what the checkout pipeline appends finalized orders to.
type Writer interface {
	Append(order domain.Order) error
}

// TextLedger writes the historical sales.txt / sales_items.txt pair.
type TextLedger struct {
	salesPath string
	itemsPath string
}

func NewTextLedger(salesPath, itemsPath string) *TextLedger {
	return &TextLedger{salesPath: salesPath, itemsPath: itemsPath}
}

// Append writes the order header and then its line items. The header
// write is the commit point: if it fails nothing is recorded.
func (l *TextLedger) Append(order domain.Order) error {
	header := []string{
		strconv.FormatInt(order.ID, 10),
		order.CustomerPhone,
		strconv.Itoa(order.EmployeeID),
		order.Date,
		strconv.FormatFloat(order.TotalAmount, 'f', 2, 64),
		strconv.FormatFloat(order.Discount, 'f', 2, 64),
	}
	if err := flatfile.AppendRecords(l.salesPath, [][]string{header}); err != nil {
		return err
	}

	items := make([][]string, len(order.Items))
	for i, item := range order.Items {
		items[i] = []string{
			strconv.FormatInt(order.ID, 10),
			strconv.Itoa(item.ProductID),
			strconv.Itoa(item.Quantity),
			strconv.FormatFloat(item.UnitPrice, 'f', 2, 64),
		}
	}
	return flatfile.AppendRecords(l.itemsPath, items)
}

// Orders reads back every order header in append order. Items are not
// attached; use Items and join by order id.
func (l *TextLedger) Orders() ([]domain.Order, error) {
	records, err := flatfile.ReadRecords(l.salesPath)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for _, rec := range records {
		if len(rec) != 6 {
			return nil, fmt.Errorf("%w: order record has %d fields", domain.ErrPersistence, len(rec))
		}
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: order id %q", domain.ErrPersistence, rec[0])
		}
		employeeID, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%w: employee id %q", domain.ErrPersistence, rec[2])
		}
		total, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: order total %q", domain.ErrPersistence, rec[4])
		}
		discount, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: order discount %q", domain.ErrPersistence, rec[5])
		}
		orders = append(orders, domain.Order{
			ID:            id,
			CustomerPhone: rec[1],
			EmployeeID:    employeeID,
			Date:          rec[3],
			TotalAmount:   total,
			Discount:      discount,
		})
	}
	return orders, nil
}

// Items reads back every persisted line item in append order.
func (l *TextLedger) Items() ([]domain.OrderItem, error) {
	records, err := flatfile.ReadRecords(l.itemsPath)
	if err != nil {
		return nil, err
	}
	items := make([]domain.OrderItem, 0, len(records))
	for _, rec := range records {
		if len(rec) != 4 {
			return nil, fmt.Errorf("%w: item record has %d fields", domain.ErrPersistence, len(rec))
		}
		orderID, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: item order id %q", domain.ErrPersistence, rec[0])
		}
		productID, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%w: item product id %q", domain.ErrPersistence, rec[1])
		}
		qty, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%w: item quantity %q", domain.ErrPersistence, rec[2])
		}
		price, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: item unit price %q", domain.ErrPersistence, rec[3])
		}
		items = append(items, domain.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  qty,
			UnitPrice: price,
		})
	}
	return items, nil
}

// ItemsFor returns the line items belonging to one order.
func (l *TextLedger) ItemsFor(orderID int64) ([]domain.OrderItem, error) {
	all, err := l.Items()
	if err != nil {
		return nil, err
	}
	var items []domain.OrderItem
	for _, item := range all {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	return items, nil
}
