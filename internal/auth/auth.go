// Package auth handles operator login and credential management.
// Passwords are stored as bcrypt hashes in the employee file.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"supershop/m/domain"
	"supershop/m/internal/store"
)

// MaxAttempts is how many consecutive login failures the shell allows
// before exiting.
const MaxAttempts = 3

type Service struct {
	Employees *store.EmployeeStore
}

func NewService(employees *store.EmployeeStore) *Service {
	return &Service{Employees: employees}
}

// Authenticate checks the credentials and returns a session for the
// operator. Unknown usernames and wrong passwords are not
// distinguished.
func (s *Service) Authenticate(username, password string) (domain.Session, error) {
	employee, err := s.Employees.FindByUsername(username)
	if err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)) != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	return domain.Session{EmployeeID: employee.ID, Name: employee.Name, Role: employee.Role}, nil
}

// Register creates a new employee account. Only admins may register
// operators.
func (s *Service) Register(session domain.Session, name, username, password, role string) (domain.Employee, error) {
	if !session.IsAdmin() {
		return domain.Employee{}, fmt.Errorf("register employee: %w", domain.ErrPermissionDenied)
	}
	if role != domain.RoleAdmin && role != domain.RoleEmployee {
		return domain.Employee{}, fmt.Errorf("unknown role %q: %w", role, domain.ErrNotFound)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("hash password: %w", err)
	}
	employee := domain.Employee{
		ID:       s.Employees.NextID(),
		Name:     name,
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := s.Employees.Add(employee); err != nil {
		return domain.Employee{}, err
	}
	return employee, nil
}

// ChangePassword replaces the session operator's password.
func (s *Service) ChangePassword(session domain.Session, current, next string) error {
	employee, err := s.Employees.Get(session.EmployeeID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	employee.Password = string(hash)
	return s.Employees.Update(employee)
}

// Bootstrap seeds a default admin account when the employee file is
// empty, so a fresh install can log in.
func (s *Service) Bootstrap() error {
	if len(s.Employees.List()) > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Employees.Add(domain.Employee{
		ID:       1,
		Name:     "Administrator",
		Username: "admin",
		Password: string(hash),
		Role:     domain.RoleAdmin,
	})
}
