package store

import (
	"fmt"
	"strconv"

	"supershop/m/domain"
	"supershop/m/internal/flatfile"
)

// CustomerStore is the customer ledger, keyed by phone number.
// Customers are created on first purchase or explicitly and never
// deleted.
type CustomerStore struct {
	path      string
	customers []domain.Customer
	byPhone   map[string]int
}

func NewCustomerStore(path string) *CustomerStore {
	return &CustomerStore{path: path, byPhone: make(map[string]int)}
}

func (s *CustomerStore) Load() error {
	records, err := flatfile.ReadRecords(s.path)
	if err != nil {
		return err
	}
	customers := make([]domain.Customer, 0, len(records))
	for _, rec := range records {
		c, err := decodeCustomer(rec)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, s.path, err)
		}
		customers = append(customers, c)
	}
	s.customers = customers
	s.byPhone = make(map[string]int, len(customers))
	for i, c := range customers {
		s.byPhone[c.Phone] = i
	}
	return nil
}

func (s *CustomerStore) SaveAll() error {
	records := make([][]string, len(s.customers))
	for i, c := range s.customers {
		records[i] = encodeCustomer(c)
	}
	return flatfile.WriteRecords(s.path, records)
}

func (s *CustomerStore) List() []domain.Customer {
	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *CustomerStore) Get(phone string) (domain.Customer, error) {
	i, ok := s.byPhone[phone]
	if !ok {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", phone, domain.ErrNotFound)
	}
	return s.customers[i], nil
}

func (s *CustomerStore) Add(c domain.Customer) error {
	if c.Phone == "" || c.Phone == domain.GuestPhone {
		return fmt.Errorf("customer phone %q: %w", c.Phone, domain.ErrInvalidPhone)
	}
	if _, ok := s.byPhone[c.Phone]; ok {
		return fmt.Errorf("customer %s: %w", c.Phone, domain.ErrDuplicateKey)
	}
	s.customers = append(s.customers, c)
	s.byPhone[c.Phone] = len(s.customers) - 1
	return s.SaveAll()
}

// Update replaces the record with the same phone.
func (s *CustomerStore) Update(c domain.Customer) error {
	i, ok := s.byPhone[c.Phone]
	if !ok {
		return fmt.Errorf("customer %s: %w", c.Phone, domain.ErrNotFound)
	}
	s.customers[i] = c
	return s.SaveAll()
}

func encodeCustomer(c domain.Customer) []string {
	return []string{
		c.Phone,
		c.Name,
		c.Address,
		strconv.FormatFloat(c.TotalSpending, 'f', 2, 64),
		strconv.Itoa(c.LoyaltyPoints),
		strconv.FormatFloat(c.LastMilestone, 'f', 0, 64),
	}
}

func decodeCustomer(rec []string) (domain.Customer, error) {
	if len(rec) != 6 {
		return domain.Customer{}, fmt.Errorf("customer record has %d fields", len(rec))
	}
	spending, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("total spending %q", rec[3])
	}
	points, err := strconv.Atoi(rec[4])
	if err != nil {
		return domain.Customer{}, fmt.Errorf("loyalty points %q", rec[4])
	}
	milestone, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("last milestone %q", rec[5])
	}
	return domain.Customer{
		Phone:         rec[0],
		Name:          rec[1],
		Address:       rec[2],
		TotalSpending: spending,
		LoyaltyPoints: points,
		LastMilestone: milestone,
	}, nil
}
