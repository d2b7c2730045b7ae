// Package cli is the terminal shell: a thin prompt/response loop over
// the stores, the checkout pipeline and the report engine. It holds no
// business logic of its own and is replaceable by any other driver of
// the same services.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"supershop/m/domain"
	"supershop/m/internal/auth"
	"supershop/m/internal/config"
	"supershop/m/internal/ledger"
	"supershop/m/internal/pos"
	"supershop/m/internal/report"
	"supershop/m/internal/store"
)

type Shell struct {
	cfg       config.Config
	in        *bufio.Scanner
	out       io.Writer
	products  *store.ProductStore
	customers *store.CustomerStore
	employees *store.EmployeeStore
	ledger    *ledger.TextLedger
	pipeline  *pos.Pipeline
	auth      *auth.Service
	reports   *report.Engine

	session domain.Session
	cart    *pos.Cart
	// eof is set once the input stream is exhausted; every menu loop
	// exits on it instead of spinning on empty reads.
	eof bool
}

func New(cfg config.Config, in io.Reader, out io.Writer,
	products *store.ProductStore, customers *store.CustomerStore, employees *store.EmployeeStore,
	orderLedger *ledger.TextLedger, pipeline *pos.Pipeline, authSvc *auth.Service, reports *report.Engine) *Shell {
	return &Shell{
		cfg:       cfg,
		in:        bufio.NewScanner(in),
		out:       out,
		products:  products,
		customers: customers,
		employees: employees,
		ledger:    orderLedger,
		pipeline:  pipeline,
		auth:      authSvc,
		reports:   reports,
		cart:      pos.NewCart(),
	}
}

// Run drives login and the main menu until the operator exits or the
// input stream ends.
func (s *Shell) Run() error {
	if !s.login() {
		return errors.New("too many failed login attempts")
	}
	s.mainMenu()
	return nil
}

func (s *Shell) login() bool {
	for attempts := auth.MaxAttempts; attempts > 0; attempts-- {
		s.printf("\n=== SUPER SHOP - LOGIN ===\n")
		username := s.prompt("Username: ")
		password := s.prompt("Password: ")
		if s.eof {
			return false
		}
		session, err := s.auth.Authenticate(username, password)
		if err == nil {
			s.session = session
			s.printf("\nLogin successful! Welcome, %s\n", session.Name)
			return true
		}
		s.printf("\nInvalid username or password! Attempts remaining: %d\n", attempts-1)
	}
	return false
}

func (s *Shell) mainMenu() {
	for !s.eof {
		s.printf("\n=== MAIN MENU ===\n")
		s.printf("1. Products\n2. Inventory\n3. Sales\n4. Customers\n5. Reports\n6. Settings\n7. Exit\n")
		switch s.promptInt("Enter your choice: ") {
		case 1:
			s.productMenu()
		case 2:
			s.inventoryMenu()
		case 3:
			s.salesMenu()
		case 4:
			s.customerMenu()
		case 5:
			s.reportMenu()
		case 6:
			s.settingsMenu()
		case 7:
			return
		default:
			s.printf("Invalid choice! Please try again.\n")
		}
	}
}

func (s *Shell) settingsMenu() {
	for !s.eof {
		s.printf("\n=== SETTINGS ===\n")
		s.printf("1. Register Employee\n2. Change Password\n3. Back\n")
		switch s.promptInt("Enter your choice: ") {
		case 1:
			name := s.prompt("Name: ")
			username := s.prompt("Username: ")
			password := s.prompt("Password: ")
			role := s.prompt("Role (admin/employee): ")
			employee, err := s.auth.Register(s.session, name, username, password, role)
			if err != nil {
				s.fail(err)
				continue
			}
			s.printf("Employee #%d registered.\n", employee.ID)
		case 2:
			current := s.prompt("Current password: ")
			next := s.prompt("New password: ")
			if err := s.auth.ChangePassword(s.session, current, next); err != nil {
				s.fail(err)
				continue
			}
			s.printf("Password updated.\n")
		case 3:
			return
		default:
			s.printf("Invalid choice! Please try again.\n")
		}
	}
}

// Prompt helpers

func (s *Shell) prompt(label string) string {
	if s.eof {
		return ""
	}
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		s.eof = true
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *Shell) promptInt(label string) int {
	n, err := strconv.Atoi(s.prompt(label))
	if err != nil {
		return -1
	}
	return n
}

func (s *Shell) promptFloat(label string) float64 {
	f, err := strconv.ParseFloat(s.prompt(label), 64)
	if err != nil {
		return -1
	}
	return f
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// fail prints an operator-facing message for the error taxonomy.
func (s *Shell) fail(err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.printf("Not found: %v\n", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		s.printf("Insufficient stock: %v\n", err)
	case errors.Is(err, domain.ErrInvalidQuantity):
		s.printf("Invalid quantity: %v\n", err)
	case errors.Is(err, domain.ErrDuplicateKey):
		s.printf("Already exists: %v\n", err)
	case errors.Is(err, domain.ErrPermissionDenied):
		s.printf("Permission denied.\n")
	case errors.Is(err, domain.ErrPersistence):
		s.printf("Storage error: %v\n", err)
	default:
		s.printf("Error: %v\n", err)
	}
}
