package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supershop/m/domain"
)

func newEmployeeStore(t *testing.T) (*EmployeeStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employees.txt")
	s := NewEmployeeStore(path)
	require.NoError(t, s.Load())
	return s, path
}

func TestEmployeeStoreRoundTrip(t *testing.T) {
	s, path := newEmployeeStore(t)
	require.NoError(t, s.Add(domain.Employee{
		ID: 1, Name: "Administrator", Username: "admin", Password: "$2a$10$hash", Role: domain.RoleAdmin,
	}))
	require.NoError(t, s.Add(domain.Employee{
		ID: 2, Name: "Cashier", Username: "cashier", Password: "$2a$10$other", Role: domain.RoleEmployee, TotalSales: 120.5,
	}))

	reloaded := NewEmployeeStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, s.List(), reloaded.List())

	e, err := reloaded.FindByUsername("cashier")
	require.NoError(t, err)
	assert.Equal(t, 2, e.ID)
}

func TestEmployeeStoreDuplicates(t *testing.T) {
	s, _ := newEmployeeStore(t)
	require.NoError(t, s.Add(domain.Employee{ID: 1, Username: "admin", Role: domain.RoleAdmin}))

	assert.ErrorIs(t, s.Add(domain.Employee{ID: 1, Username: "other"}), domain.ErrDuplicateKey)
	assert.ErrorIs(t, s.Add(domain.Employee{ID: 2, Username: "admin"}), domain.ErrDuplicateKey)
}

func TestEmployeeStoreAddSales(t *testing.T) {
	s, path := newEmployeeStore(t)
	require.NoError(t, s.Add(domain.Employee{ID: 1, Username: "cashier", Role: domain.RoleEmployee}))

	require.NoError(t, s.AddSales(1, 900))
	require.NoError(t, s.AddSales(1, 100.25))
	e, err := s.Get(1)
	require.NoError(t, err)
	assert.InDelta(t, 1000.25, e.TotalSales, 1e-9)

	reloaded := NewEmployeeStore(path)
	require.NoError(t, reloaded.Load())
	e, err = reloaded.Get(1)
	require.NoError(t, err)
	assert.InDelta(t, 1000.25, e.TotalSales, 1e-9)

	assert.ErrorIs(t, s.AddSales(404, 10), domain.ErrNotFound)
}

func TestEmployeeStoreNextID(t *testing.T) {
	s, _ := newEmployeeStore(t)
	assert.Equal(t, 1, s.NextID())
	require.NoError(t, s.Add(domain.Employee{ID: 5, Username: "a", Role: domain.RoleEmployee}))
	assert.Equal(t, 6, s.NextID())
}
