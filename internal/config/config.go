package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	DataDir     string
	ReceiptsDir string
	ReportsDir  string
	// HistoryDSN is the sqlite database the report engine replays the
	// ledger into. ":memory:" keeps it ephemeral.
	HistoryDSN string
}

// Load reads configuration from environment variables with reasonable
// defaults. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Overload()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	receiptsDir := os.Getenv("RECEIPTS_DIR")
	if receiptsDir == "" {
		receiptsDir = "receipts"
	}

	reportsDir := os.Getenv("REPORTS_DIR")
	if reportsDir == "" {
		reportsDir = "reports"
	}

	dsn := os.Getenv("HISTORY_DSN")
	if dsn == "" {
		dsn = ":memory:"
	}

	return Config{
		DataDir:     dataDir,
		ReceiptsDir: receiptsDir,
		ReportsDir:  reportsDir,
		HistoryDSN:  dsn,
	}
}

// File paths inside DataDir, kept compatible with the historical flat
// files.
func (c Config) ProductsPath() string  { return filepath.Join(c.DataDir, "products.txt") }
func (c Config) CustomersPath() string { return filepath.Join(c.DataDir, "customers.txt") }
func (c Config) EmployeesPath() string { return filepath.Join(c.DataDir, "employees.txt") }
func (c Config) SalesPath() string     { return filepath.Join(c.DataDir, "sales.txt") }
func (c Config) SaleItemsPath() string { return filepath.Join(c.DataDir, "sales_items.txt") }
