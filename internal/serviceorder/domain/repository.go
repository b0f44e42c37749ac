package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListOrderQuery is the repository-level filter with parsed IDs.
type ListOrderQuery struct {
	CustomerID      snowflake.ID
	AssignedStaffID snowflake.ID
	Status          Status
	ScheduledFrom   *time.Time
	ScheduledTo     *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	List(ctx context.Context, db *gorm.DB, query ListOrderQuery) ([]Order, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertLine(ctx context.Context, db *gorm.DB, line *LineEntry) error
	DeleteLine(ctx context.Context, db *gorm.DB, orderID, lineID snowflake.ID) error

	LastScheduledFor(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*time.Time, error)
}
