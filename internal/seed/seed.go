// Package seed bootstraps required rows and optional sample data.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogdomain "github.com/founderspw/somanager/internal/catalog/domain"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	invoicedomain "github.com/founderspw/somanager/internal/invoice/domain"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
)

// EnsureInvoiceSequence creates the single sequence row when missing.
// Assembly would lazily create it too, but seeding it up front makes
// the invariant visible in a fresh database.
func EnsureInvoiceSequence(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	row := invoicedomain.InvoiceSequence{ID: 1, NextSeq: 1}
	return db.Where("id = ?", 1).FirstOrCreate(&row).Error
}

// EnsureSampleData loads a small demo data set on an empty database:
// a few catalog items, a customer on a monthly cadence with one
// contracted service, a staff member, and a draft order. Databases
// that already hold catalog items are left untouched.
func EnsureSampleData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Item{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now()

		mowing := catalogdomain.Item{
			ID:             node.Generate(),
			Name:           "Lawn mowing",
			Description:    "Mow, edge and blow",
			UnitPriceCents: 6500,
			Unit:           "visit",
			Taxable:        true,
			Active:         true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		cleanup := catalogdomain.Item{
			ID:             node.Generate(),
			Name:           "Seasonal cleanup",
			Description:    "Leaf and debris removal",
			UnitPriceCents: 19999,
			Unit:           "job",
			Taxable:        true,
			Active:         true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		consult := catalogdomain.Item{
			ID:             node.Generate(),
			Name:           "Site consultation",
			UnitPriceCents: 0,
			Unit:           "hour",
			Taxable:        false,
			Active:         true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Create([]*catalogdomain.Item{&mowing, &cleanup, &consult}).Error; err != nil {
			return err
		}

		cust := customerdomain.Customer{
			ID:        node.Generate(),
			Name:      "Maple Street HOA",
			Phone:     "555-0142",
			Email:     "board@maplestreethoa.example",
			Address:   "100 Maple St",
			Cadence:   "monthly_same_day",
			Metadata:  datatypes.JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&cust).Error; err != nil {
			return err
		}

		contract := customerdomain.ContractedService{
			ID:         node.Generate(),
			CustomerID: cust.ID,
			CatalogID:  mowing.ID,
			Active:     true,
			CreatedAt:  now,
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		tech := staffdomain.Member{
			ID:        node.Generate(),
			Name:      "Sam Rivera",
			Role:      "Technician",
			Phone:     "555-0177",
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&tech).Error; err != nil {
			return err
		}

		order := sodomain.Order{
			ID:         node.Generate(),
			CustomerID: cust.ID,
			Title:      "Monthly grounds service",
			Status:     sodomain.StatusDraft,
			Metadata:   datatypes.JSONMap{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		line := sodomain.LineEntry{
			ID:             node.Generate(),
			OrderID:        order.ID,
			CatalogID:      mowing.ID,
			Name:           mowing.Name,
			Unit:           mowing.Unit,
			UnitPriceCents: mowing.UnitPriceCents,
			Taxable:        mowing.Taxable,
			Quantity:       decimal.NewFromInt(1),
			Position:       0,
			CreatedAt:      now,
		}
		return tx.Create(&line).Error
	})
}
