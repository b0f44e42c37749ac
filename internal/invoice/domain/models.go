// Package domain contains the invoice value object and the persisted
// invoice ledger models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// RecordStatus is the lifecycle of a persisted invoice record.
type RecordStatus string

const (
	RecordStatusIssued RecordStatus = "ISSUED"
	RecordStatusVoid   RecordStatus = "VOID"
)

// InvoiceRecord is the lightweight audit row kept per issued invoice:
// number ↔ order id ↔ totals. The full document is the rendered PDF.
type InvoiceRecord struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Seq        int64        `gorm:"not null;uniqueIndex" json:"seq"`
	Number     string       `gorm:"type:text;not null;uniqueIndex" json:"number"`
	OrderID    snowflake.ID `gorm:"not null;index" json:"order_id"`
	CustomerID snowflake.ID `gorm:"not null;index" json:"customer_id"`

	Status RecordStatus `gorm:"type:text;not null;default:'ISSUED'" json:"status"`

	SubtotalCents int64           `gorm:"not null" json:"subtotal_cents"`
	TaxCents      int64           `gorm:"not null" json:"tax_cents"`
	TotalCents    int64           `gorm:"not null" json:"total_cents"`
	TaxRate       decimal.Decimal `gorm:"type:numeric;not null" json:"tax_rate"`

	IssuedAt time.Time  `gorm:"not null" json:"issued_at"`
	DueAt    time.Time  `gorm:"not null" json:"due_at"`
	VoidedAt *time.Time `json:"voided_at,omitempty"`

	PDFPath string `gorm:"type:text" json:"pdf_path,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceRecord) TableName() string { return "invoice_records" }

// InvoiceSequence is the single-row monotonic counter backing invoice
// numbers. It is only read and bumped inside the assembly transaction.
type InvoiceSequence struct {
	ID      int64 `gorm:"primaryKey"`
	NextSeq int64 `gorm:"not null;default:1"`
}

// TableName sets the database table name.
func (InvoiceSequence) TableName() string { return "invoice_sequences" }

// CustomerSnapshot freezes the bill-to block at assembly time.
type CustomerSnapshot struct {
	ID      snowflake.ID `json:"id"`
	Name    string       `json:"name"`
	Phone   string       `json:"phone,omitempty"`
	Email   string       `json:"email,omitempty"`
	Address string       `json:"address,omitempty"`
}

// StaffSnapshot freezes the assigned staff member at assembly time.
type StaffSnapshot struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
	Role string       `json:"role,omitempty"`
}

// Line is one computed invoice line: the order line snapshot plus its
// extended amount, already rounded to cents.
type Line struct {
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	Taxable        bool            `json:"taxable"`
	ExtendedCents  int64           `json:"extended_cents"`
}

// Invoice is the assembled, immutable document value. Recomputing it
// from the same frozen order snapshot yields identical totals.
type Invoice struct {
	Number  string       `json:"number"`
	Seq     int64        `json:"seq"`
	OrderID snowflake.ID `json:"order_id"`

	Customer CustomerSnapshot `json:"customer"`
	Staff    *StaffSnapshot   `json:"staff,omitempty"`

	Lines []Line `json:"lines"`

	SubtotalCents int64           `json:"subtotal_cents"`
	TaxCents      int64           `json:"tax_cents"`
	TotalCents    int64           `json:"total_cents"`
	TaxRate       decimal.Decimal `json:"tax_rate"`

	IssuedAt time.Time `json:"issued_at"`
	DueAt    time.Time `json:"due_at"`
	Notes    string    `json:"notes,omitempty"`

	PDFPath string `json:"pdf_path,omitempty"`
}
