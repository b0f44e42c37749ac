// Package domain contains the service order store models and the
// status state machine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status is the service order lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusInvoiced   Status = "invoiced"
	StatusClosed     Status = "closed"
	StatusCancelled  Status = "cancelled"
)

// Transitions is the explicit forward transition table. Invoiced is
// entered only through invoice assembly, and left only through an
// explicit reopen; neither edge is reachable via SetStatus.
var Transitions = map[Status][]Status{
	StatusDraft:      {StatusScheduled, StatusCancelled},
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusInvoiced},
	StatusInvoiced:   {StatusClosed},
	StatusClosed:     {},
	StatusCancelled:  {},
}

// CanTransition reports whether from→to is in the transition table.
func CanTransition(from, to Status) bool {
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusDraft, StatusScheduled, StatusInProgress, StatusCompleted,
		StatusInvoiced, StatusClosed, StatusCancelled:
		return s, nil
	default:
		return "", ErrUnknownStatus
	}
}

// LinesFrozen reports whether line entries may no longer be mutated.
// Invoiced and closed orders are frozen per the invoicing contract;
// cancelled orders are terminal so their lines are frozen too.
func (s Status) LinesFrozen() bool {
	switch s {
	case StatusInvoiced, StatusClosed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order is a unit of work for a customer carrying priced line entries
// and a lifecycle status.
type Order struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID      snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	AssignedStaffID *snowflake.ID `gorm:"index" json:"assigned_staff_id,omitempty"`

	Title        string     `gorm:"type:text" json:"title,omitempty"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	Status       Status     `gorm:"type:text;not null;default:'draft';index" json:"status"`
	ScheduledFor *time.Time `gorm:"index" json:"scheduled_for,omitempty"`

	Lines []LineEntry `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "service_orders" }

// LineEntry is a priced, quantified catalog snapshot embedded in an
// order. Price and taxable flag are captured at add time; later
// catalog edits never reach existing entries.
type LineEntry struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID snowflake.ID `gorm:"not null;index" json:"order_id"`

	CatalogID      snowflake.ID `gorm:"not null" json:"catalog_id"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	Unit           string       `gorm:"type:text" json:"unit,omitempty"`
	UnitPriceCents int64        `gorm:"not null" json:"unit_price_cents"`
	Taxable        bool         `gorm:"not null" json:"taxable"`

	Quantity            decimal.Decimal `gorm:"type:numeric;not null" json:"quantity"`
	OverridePriceCents  *int64          `json:"override_price_cents,omitempty"`
	OverrideDescription *string         `gorm:"type:text" json:"override_description,omitempty"`

	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (LineEntry) TableName() string { return "order_lines" }

// EffectiveUnitPriceCents is the override price when present, else the
// captured catalog price.
func (l LineEntry) EffectiveUnitPriceCents() int64 {
	if l.OverridePriceCents != nil {
		return *l.OverridePriceCents
	}
	return l.UnitPriceCents
}
