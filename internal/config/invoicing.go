package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/founderspw/somanager/internal/invoice/format"
)

// InvoicingConfig drives invoice assembly: the single global tax rate,
// the invoice number template and payment terms, plus the business
// identity printed on rendered documents.
type InvoicingConfig struct {
	// TaxRate is a fraction, e.g. 0.08 for 8%.
	TaxRate        float64 `mapstructure:"taxRate"`
	NumberTemplate string  `mapstructure:"numberTemplate"`
	TermsDays      int     `mapstructure:"termsDays"`

	BusinessName    string `mapstructure:"businessName"`
	BusinessAddress string `mapstructure:"businessAddress"`
	BusinessEmail   string `mapstructure:"businessEmail"`
	BusinessPhone   string `mapstructure:"businessPhone"`
}

func DefaultInvoicingConfig() InvoicingConfig {
	return InvoicingConfig{
		TaxRate:        0.0,
		NumberTemplate: "INV-{YYYY}{MM}{DD}-{SEQ6}",
		TermsDays:      14,
		BusinessName:   "Founders Property Works",
	}
}

// InvoicingConfigHolder hands out the current invoicing config and
// swaps it atomically when the backing file changes on disk.
type InvoicingConfigHolder struct {
	current atomic.Value // holds InvoicingConfig
}

func NewInvoicingConfigHolder(cfg Config) (*InvoicingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("invoicing")
	v.SetConfigType("yml")
	v.AddConfigPath(cfg.DataDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("SOMANAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultInvoicingConfig()
	v.SetDefault("invoicing.taxRate", defaults.TaxRate)
	v.SetDefault("invoicing.numberTemplate", defaults.NumberTemplate)
	v.SetDefault("invoicing.termsDays", defaults.TermsDays)
	v.SetDefault("invoicing.businessName", defaults.BusinessName)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var parsed InvoicingConfig
	if err := v.UnmarshalKey("invoicing", &parsed); err != nil {
		return nil, err
	}
	if err := validateInvoicingConfig(parsed); err != nil {
		return nil, err
	}

	holder := &InvoicingConfigHolder{}
	holder.current.Store(parsed)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated InvoicingConfig
		if err := v.UnmarshalKey("invoicing", &updated); err != nil {
			log.Printf("[invoicing-config] reload failed: %v", err)
			return
		}
		if err := validateInvoicingConfig(updated); err != nil {
			log.Printf("[invoicing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[invoicing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *InvoicingConfigHolder) Get() InvoicingConfig {
	return h.current.Load().(InvoicingConfig)
}

// Set replaces the current config. Used by tests and the settings endpoint.
func (h *InvoicingConfigHolder) Set(cfg InvoicingConfig) error {
	if err := validateInvoicingConfig(cfg); err != nil {
		return err
	}
	h.current.Store(cfg)
	return nil
}

func validateInvoicingConfig(cfg InvoicingConfig) error {
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return errors.New("invoicing.taxRate must be a fraction in [0, 1)")
	}
	if strings.TrimSpace(cfg.NumberTemplate) == "" {
		return errors.New("invoicing.numberTemplate cannot be empty")
	}
	if !format.HasSequenceToken(cfg.NumberTemplate) {
		return errors.New("invoicing.numberTemplate needs a {SEQ} or {SEQn} token")
	}
	if cfg.TermsDays < 0 {
		return errors.New("invoicing.termsDays cannot be negative")
	}
	return nil
}

// HolderFor wraps a fixed config; convenient for tests.
func HolderFor(cfg InvoicingConfig) *InvoicingConfigHolder {
	h := &InvoicingConfigHolder{}
	h.current.Store(cfg)
	return h
}
