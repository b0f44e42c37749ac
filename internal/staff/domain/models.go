// Package domain contains persistence models for the staff directory.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Member is a staff directory record assignable to service orders.
type Member struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Role      string       `gorm:"type:text;not null;default:'Technician'" json:"role"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Email     string       `gorm:"type:text" json:"email,omitempty"`
	Active    bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "staff_members" }
