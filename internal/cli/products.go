package cli

import (
	"strings"
	"time"

	"supershop/m/domain"
)

func (s *Shell) productMenu() {
	for !s.eof {
		s.printf("\n=== PRODUCT MANAGEMENT ===\n")
		s.printf("1. Add Product\n2. View Products\n3. Search Product\n4. Edit Product\n5. Delete Product\n6. Back\n")
		switch s.promptInt("Enter your choice: ") {
		case 1:
			s.addProduct()
		case 2:
			s.viewProducts()
		case 3:
			s.searchProduct()
		case 4:
			s.editProduct()
		case 5:
			s.deleteProduct()
		case 6:
			return
		default:
			s.printf("Invalid choice! Please try again.\n")
		}
	}
}

func (s *Shell) addProduct() {
	p := domain.Product{
		ID:        s.promptInt("ID: "),
		DateAdded: time.Now().Format("2006-01-02"),
	}
	p.Name = s.prompt("Name: ")
	p.Category = s.prompt("Category: ")
	p.Quantity = s.promptInt("Quantity: ")
	p.PurchasePrice = s.promptFloat("Purchase Price: ")
	p.SalePrice = s.promptFloat("Sale Price: ")
	if err := s.products.Add(p); err != nil {
		s.fail(err)
		return
	}
	s.printf("Product added successfully!\n")
}

func (s *Shell) viewProducts() {
	products := s.products.List()
	if len(products) == 0 {
		s.printf("No products available!\n")
		return
	}
	s.printf("\n%-6s %-20s %-14s %-8s %-14s %-10s\n", "ID", "Name", "Category", "Qty", "Purchase", "Sale")
	for _, p := range products {
		s.printf("%-6d %-20s %-14s %-8d %-14.2f %-10.2f\n",
			p.ID, p.Name, p.Category, p.Quantity, p.PurchasePrice, p.SalePrice)
	}
}

func (s *Shell) searchProduct() {
	term := strings.ToLower(s.prompt("Search term (name or category): "))
	found := false
	for _, p := range s.products.List() {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			s.printf("%d\t%s\t%s\tstock %d\t%.2f TK\n", p.ID, p.Name, p.Category, p.Quantity, p.SalePrice)
			found = true
		}
	}
	if !found {
		s.printf("No matching products.\n")
	}
}

func (s *Shell) editProduct() {
	id := s.promptInt("Product ID: ")
	p, err := s.products.Get(id)
	if err != nil {
		s.fail(err)
		return
	}
	if name := s.prompt("Name [" + p.Name + "]: "); name != "" {
		p.Name = name
	}
	if category := s.prompt("Category [" + p.Category + "]: "); category != "" {
		p.Category = category
	}
	if price := s.promptFloat("Sale Price: "); price >= 0 {
		p.SalePrice = price
	}
	if price := s.promptFloat("Purchase Price: "); price >= 0 {
		p.PurchasePrice = price
	}
	if err := s.products.Update(p); err != nil {
		s.fail(err)
		return
	}
	s.printf("Product updated.\n")
}

func (s *Shell) deleteProduct() {
	id := s.promptInt("Product ID: ")
	if confirm := s.prompt("Delete this product? (y/n): "); strings.ToLower(confirm) != "y" {
		return
	}
	if err := s.products.Delete(id); err != nil {
		s.fail(err)
		return
	}
	s.printf("Product deleted.\n")
}

// Inventory

const lowStockThreshold = 10

func (s *Shell) inventoryMenu() {
	for !s.eof {
		s.printf("\n=== INVENTORY MANAGEMENT ===\n")
		s.printf("1. Restock Inventory\n2. Check Low Stock Items\n3. Stock Report\n4. Back\n")
		switch s.promptInt("Enter your choice: ") {
		case 1:
			id := s.promptInt("Product ID: ")
			qty := s.promptInt("Quantity to add: ")
			if err := s.products.Restock(id, qty); err != nil {
				s.fail(err)
				continue
			}
			p, _ := s.products.Get(id)
			s.printf("New stock level: %d\n", p.Quantity)
		case 2:
			s.lowStock()
		case 3:
			s.stockReport()
		case 4:
			return
		default:
			s.printf("Invalid choice! Please try again.\n")
		}
	}
}

func (s *Shell) lowStock() {
	found := false
	for _, p := range s.products.List() {
		if p.Quantity < lowStockThreshold {
			s.printf("%d\t%s\tstock %d\n", p.ID, p.Name, p.Quantity)
			found = true
		}
	}
	if !found {
		s.printf("No low stock items found!\n")
	}
}

// stockReport summarizes inventory value (at purchase price) per
// category.
func (s *Shell) stockReport() {
	type categoryTotal struct {
		items int
		value float64
	}
	totals := make(map[string]*categoryTotal)
	var order []string
	for _, p := range s.products.List() {
		t, ok := totals[p.Category]
		if !ok {
			t = &categoryTotal{}
			totals[p.Category] = t
			order = append(order, p.Category)
		}
		t.items += p.Quantity
		t.value += float64(p.Quantity) * p.PurchasePrice
	}
	if len(order) == 0 {
		s.printf("No products available!\n")
		return
	}
	var grand float64
	s.printf("\n%-16s %-10s %-12s\n", "Category", "Items", "Value")
	for _, category := range order {
		t := totals[category]
		s.printf("%-16s %-10d %-12.2f\n", category, t.items, t.value)
		grand += t.value
	}
	s.printf("Total inventory value: %.2f TK\n", grand)
}
