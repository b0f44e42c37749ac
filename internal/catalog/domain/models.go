// Package domain contains persistence models for the service catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Item is a priced catalog line-item definition. Prices live here as
// integer cents; orders copy them into line snapshots at add time, so
// later edits never reach existing orders.
type Item struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	UnitPriceCents int64        `gorm:"not null;default:0" json:"unit_price_cents"`
	Unit           string       `gorm:"type:text" json:"unit,omitempty"`
	Taxable        bool         `gorm:"not null;default:false" json:"taxable"`
	Active         bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Item) TableName() string { return "catalog_items" }
