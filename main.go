package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"supershop/m/internal/auth"
	"supershop/m/internal/cli"
	"supershop/m/internal/config"
	"supershop/m/internal/database"
	"supershop/m/internal/ledger"
	"supershop/m/internal/migrations"
	"supershop/m/internal/pos"
	"supershop/m/internal/report"
	"supershop/m/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	products := store.NewProductStore(cfg.ProductsPath())
	customers := store.NewCustomerStore(cfg.CustomersPath())
	employees := store.NewEmployeeStore(cfg.EmployeesPath())
	for _, load := range []func() error{products.Load, customers.Load, employees.Load} {
		if err := load(); err != nil {
			log.Fatalf("failed to load data files: %v", err)
		}
	}

	authSvc := auth.NewService(employees)
	if err := authSvc.Bootstrap(); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	orderLedger := ledger.NewTextLedger(cfg.SalesPath(), cfg.SaleItemsPath())

	pipeline := &pos.Pipeline{
		Products:  products,
		Customers: customers,
		Employees: employees,
		Ledger:    orderLedger,
	}

	db, err := database.Connect(cfg.HistoryDSN)
	if err != nil {
		log.Fatalf("failed to open report database: %v", err)
	}
	defer db.Close()
	migrations.Run(db)
	reports := report.NewEngine(db)

	shell := cli.New(cfg, os.Stdin, os.Stdout,
		products, customers, employees, orderLedger, pipeline, authSvc, reports)
	if err := shell.Run(); err != nil {
		log.Fatalf("session ended: %v", err)
	}
}
