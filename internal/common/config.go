package common

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Paths   PathsConfig
	Extract ExtractConfig
	Ledger  LedgerConfig
	Watch   WatchConfig
}

// PathsConfig holds the directory layout for a validation run
type PathsConfig struct {
	InvoicesDir string // where incoming NFSe PDFs land
	ResultDir   string // audit log + results report
	ValidDir    string // routed documents that reconciled
	InvalidDir  string // routed documents that did not
}

// ExtractConfig holds text/field extraction configuration
type ExtractConfig struct {
	Pdftotext     string // pdftotext binary name or path
	SpecOverrides string // optional JSON field-spec override file
	Timeout       time.Duration
}

// LedgerConfig holds the reconciliation spreadsheet configuration
type LedgerConfig struct {
	Path string
}

// WatchConfig holds watch-daemon configuration
type WatchConfig struct {
	Debounce    time.Duration
	InitialScan bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	root := getEnv("NFSE_ROOT", ".")
	return &Config{
		Paths: PathsConfig{
			InvoicesDir: getEnv("NFSE_INVOICES_DIR", filepath.Join(root, "Notas")),
			ResultDir:   getEnv("NFSE_RESULT_DIR", filepath.Join(root, "Resultado")),
			ValidDir:    getEnv("NFSE_VALID_DIR", filepath.Join(root, "Resultado", "Validos")),
			InvalidDir:  getEnv("NFSE_INVALID_DIR", filepath.Join(root, "Resultado", "Erros")),
		},
		Extract: ExtractConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			SpecOverrides: getEnv("NFSE_FIELD_SPECS", ""),
			Timeout:       getEnvAsDuration("NFSE_EXTRACT_TIMEOUT", 30*time.Second),
		},
		Ledger: LedgerConfig{
			Path: getEnv("NFSE_LEDGER_PATH", filepath.Join(root, "Excel", "PlanilhaFinanceiro.xlsx")),
		},
		Watch: WatchConfig{
			Debounce:    getEnvAsDuration("NFSE_WATCH_DEBOUNCE", 2*time.Second),
			InitialScan: getEnvAsBool("NFSE_WATCH_INITIAL_SCAN", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Paths.InvoicesDir == "" {
		return NewAppError("CONFIG_ERROR", "NFSE_INVOICES_DIR is required", ErrInvalidInput)
	}
	if c.Ledger.Path == "" {
		return NewAppError("CONFIG_ERROR", "NFSE_LEDGER_PATH is required", ErrInvalidInput)
	}
	if c.Paths.ValidDir == "" || c.Paths.InvalidDir == "" {
		return NewAppError("CONFIG_ERROR", "valid/invalid destination directories are required", ErrInvalidInput)
	}
	return nil
}
