package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides process configuration and the hot-reloadable
// invoicing configuration holder.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Provide(NewInvoicingConfigHolder),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	// DataDir is the root for the SQLite database, rendered invoice
	// PDFs, uploaded attachments and ui_prefs.json.
	DataDir string

	ListenAddr string

	SeedSampleData bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	cfg := Config{
		AppName:        getenv("APP_SERVICE", "somanager"),
		AppVersion:     getenv("APP_VERSION", "0.1.0"),
		Environment:    environment,
		DataDir:        getenv("SOMANAGER_DATA_DIR", "data"),
		ListenAddr:     getenv("SOMANAGER_LISTEN_ADDR", "127.0.0.1:8745"),
		SeedSampleData: getenvBool("SOMANAGER_SEED_SAMPLE_DATA", environment != "production"),
	}

	return cfg
}

// DBPath is the SQLite database file inside the data dir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "somanager.db")
}

// InvoiceDir holds rendered invoice PDFs.
func (c Config) InvoiceDir() string {
	return filepath.Join(c.DataDir, "invoices")
}

// AttachmentDir holds uploaded attachment files.
func (c Config) AttachmentDir() string {
	return filepath.Join(c.DataDir, "attachments")
}

// PrefsPath is the UI preference file consumed by the presentation layer.
func (c Config) PrefsPath() string {
	return filepath.Join(c.DataDir, "ui_prefs.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
