// Package domain contains persistence models for the customer directory.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Customer is a directory record. Cadence drives recurring order
// scheduling; see the serviceorder package for the code format.
type Customer struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Phone     string            `gorm:"type:text" json:"phone,omitempty"`
	Email     string            `gorm:"type:text" json:"email,omitempty"`
	Address   string            `gorm:"type:text" json:"address,omitempty"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	Cadence   string            `gorm:"type:text" json:"cadence,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// PaymentProfile is display-only billing information. No charging
// happens here; the fields mirror what the office keeps on file.
type PaymentProfile struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID `gorm:"not null;index" json:"customer_id"`

	Method string `gorm:"type:text;not null;default:'other'" json:"method"`

	ACHRouting string `gorm:"type:text" json:"ach_routing,omitempty"`
	ACHAccount string `gorm:"type:text" json:"ach_account,omitempty"`

	CardBrand    string `gorm:"type:text" json:"card_brand,omitempty"`
	CardLast4    string `gorm:"type:text" json:"card_last4,omitempty"`
	CardName     string `gorm:"type:text" json:"card_name,omitempty"`
	CardExpMonth int    `gorm:"default:0" json:"card_exp_month,omitempty"`
	CardExpYear  int    `gorm:"default:0" json:"card_exp_year,omitempty"`

	BillStreet       string `gorm:"type:text" json:"bill_street,omitempty"`
	BillCityStateZip string `gorm:"type:text" json:"bill_city_state_zip,omitempty"`

	IsDefault bool      `gorm:"not null;default:true" json:"is_default"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (PaymentProfile) TableName() string { return "payment_profiles" }

// ContractedService links a customer to a catalog item with an
// optional standing price override. New recurring orders seed their
// lines from these rows.
type ContractedService struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_contracted_customer_item" json:"customer_id"`
	CatalogID  snowflake.ID `gorm:"not null;uniqueIndex:ux_contracted_customer_item" json:"catalog_id"`

	UnitPriceCents *int64    `json:"unit_price_cents,omitempty"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ContractedService) TableName() string { return "contracted_services" }
