package store

import (
	"fmt"
	"strconv"

	"supershop/m/domain"
	"supershop/m/internal/flatfile"
)

// EmployeeStore holds operator records including bcrypt password
// hashes and cumulative sales totals.
type EmployeeStore struct {
	path      string
	employees []domain.Employee
	byID      map[int]int
}

func NewEmployeeStore(path string) *EmployeeStore {
	return &EmployeeStore{path: path, byID: make(map[int]int)}
}

func (s *EmployeeStore) Load() error {
	records, err := flatfile.ReadRecords(s.path)
	if err != nil {
		return err
	}
	employees := make([]domain.Employee, 0, len(records))
	for _, rec := range records {
		e, err := decodeEmployee(rec)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, s.path, err)
		}
		employees = append(employees, e)
	}
	s.employees = employees
	s.reindex()
	return nil
}

func (s *EmployeeStore) SaveAll() error {
	records := make([][]string, len(s.employees))
	for i, e := range s.employees {
		records[i] = encodeEmployee(e)
	}
	return flatfile.WriteRecords(s.path, records)
}

func (s *EmployeeStore) List() []domain.Employee {
	out := make([]domain.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *EmployeeStore) Get(id int) (domain.Employee, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Employee{}, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	return s.employees[i], nil
}

func (s *EmployeeStore) FindByUsername(username string) (domain.Employee, error) {
	for _, e := range s.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return domain.Employee{}, fmt.Errorf("employee %s: %w", username, domain.ErrNotFound)
}

func (s *EmployeeStore) Add(e domain.Employee) error {
	if _, ok := s.byID[e.ID]; ok {
		return fmt.Errorf("employee %d: %w", e.ID, domain.ErrDuplicateKey)
	}
	if _, err := s.FindByUsername(e.Username); err == nil {
		return fmt.Errorf("username %s: %w", e.Username, domain.ErrDuplicateKey)
	}
	s.employees = append(s.employees, e)
	s.byID[e.ID] = len(s.employees) - 1
	return s.SaveAll()
}

func (s *EmployeeStore) Update(e domain.Employee) error {
	i, ok := s.byID[e.ID]
	if !ok {
		return fmt.Errorf("employee %d: %w", e.ID, domain.ErrNotFound)
	}
	s.employees[i] = e
	return s.SaveAll()
}

// AddSales accrues a completed sale's payable amount to the operator's
// cumulative total.
func (s *EmployeeStore) AddSales(id int, amount float64) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	s.employees[i].TotalSales += amount
	return s.SaveAll()
}

// NextID returns the lowest unused employee id.
func (s *EmployeeStore) NextID() int {
	max := 0
	for _, e := range s.employees {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

func (s *EmployeeStore) reindex() {
	s.byID = make(map[int]int, len(s.employees))
	for i, e := range s.employees {
		s.byID[e.ID] = i
	}
}

func encodeEmployee(e domain.Employee) []string {
	return []string{
		strconv.Itoa(e.ID),
		e.Name,
		e.Username,
		e.Password,
		e.Role,
		strconv.FormatFloat(e.TotalSales, 'f', 2, 64),
	}
}

func decodeEmployee(rec []string) (domain.Employee, error) {
	if len(rec) != 6 {
		return domain.Employee{}, fmt.Errorf("employee record has %d fields", len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return domain.Employee{}, fmt.Errorf("employee id %q", rec[0])
	}
	total, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("total sales %q", rec[5])
	}
	return domain.Employee{
		ID:         id,
		Name:       rec[1],
		Username:   rec[2],
		Password:   rec[3],
		Role:       rec[4],
		TotalSales: total,
	}, nil
}
