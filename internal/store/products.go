// Package store holds the flat-file repositories: a mutable in-memory
// snapshot per entity, indexed by key, rewritten to disk wholesale on
// every mutation.
package store

import (
	"fmt"
	"strconv"

	"supershop/m/domain"
	"supershop/m/internal/flatfile"
)

// ProductStore is the catalog repository. Not safe for concurrent use;
// the application is single-operator by design.
type ProductStore struct {
	path     string
	products []domain.Product
	byID     map[int]int
}

func NewProductStore(path string) *ProductStore {
	return &ProductStore{path: path, byID: make(map[int]int)}
}

// Load replaces the in-memory snapshot with the on-disk table.
func (s *ProductStore) Load() error {
	records, err := flatfile.ReadRecords(s.path)
	if err != nil {
		return err
	}
	products := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		p, err := decodeProduct(rec)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, s.path, err)
		}
		products = append(products, p)
	}
	s.products = products
	s.reindex()
	return nil
}

// SaveAll rewrites the whole table from the current snapshot.
func (s *ProductStore) SaveAll() error {
	records := make([][]string, len(s.products))
	for i, p := range s.products {
		records[i] = encodeProduct(p)
	}
	return flatfile.WriteRecords(s.path, records)
}

// List returns a copy of the catalog in file order.
func (s *ProductStore) List() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *ProductStore) Get(id int) (domain.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return s.products[i], nil
}

func (s *ProductStore) Add(p domain.Product) error {
	if _, ok := s.byID[p.ID]; ok {
		return fmt.Errorf("product %d: %w", p.ID, domain.ErrDuplicateKey)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("product %d: %w", p.ID, domain.ErrInvalidQuantity)
	}
	s.products = append(s.products, p)
	s.byID[p.ID] = len(s.products) - 1
	return s.SaveAll()
}

// Update replaces the product with the same id.
func (s *ProductStore) Update(p domain.Product) error {
	i, ok := s.byID[p.ID]
	if !ok {
		return fmt.Errorf("product %d: %w", p.ID, domain.ErrNotFound)
	}
	s.products[i] = p
	return s.SaveAll()
}

func (s *ProductStore) Delete(id int) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	s.reindex()
	return s.SaveAll()
}

// Restock adds qty units to the product. qty must be non-negative.
func (s *ProductStore) Restock(id, qty int) error {
	if qty < 0 {
		return fmt.Errorf("restock %d: %w", id, domain.ErrInvalidQuantity)
	}
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	s.products[i].Quantity += qty
	return s.SaveAll()
}

// Decrement removes qty units of stock without persisting; the caller
// batches line decrements for one order and then calls SaveAll once.
// Must be invoked at most once per order line.
func (s *ProductStore) Decrement(id, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("decrement %d: %w", id, domain.ErrInvalidQuantity)
	}
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if s.products[i].Quantity < qty {
		return fmt.Errorf("product %d has %d: %w", id, s.products[i].Quantity, domain.ErrInsufficientStock)
	}
	s.products[i].Quantity -= qty
	return nil
}

func (s *ProductStore) reindex() {
	s.byID = make(map[int]int, len(s.products))
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
}

func encodeProduct(p domain.Product) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Category,
		strconv.Itoa(p.Quantity),
		strconv.FormatFloat(p.PurchasePrice, 'f', 2, 64),
		strconv.FormatFloat(p.SalePrice, 'f', 2, 64),
		p.DateAdded,
	}
}

func decodeProduct(rec []string) (domain.Product, error) {
	if len(rec) != 7 {
		return domain.Product{}, fmt.Errorf("product record has %d fields", len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return domain.Product{}, fmt.Errorf("product id %q", rec[0])
	}
	qty, err := strconv.Atoi(rec[3])
	if err != nil {
		return domain.Product{}, fmt.Errorf("product quantity %q", rec[3])
	}
	purchase, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("purchase price %q", rec[4])
	}
	sale, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("sale price %q", rec[5])
	}
	return domain.Product{
		ID:            id,
		Name:          rec[1],
		Category:      rec[2],
		Quantity:      qty,
		PurchasePrice: purchase,
		SalePrice:     sale,
		DateAdded:     rec[6],
	}, nil
}
