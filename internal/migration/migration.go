// Package migration creates and upgrades the local database schema on
// startup so the application is usable out of the box.
package migration

import (
	"errors"

	"gorm.io/gorm"

	attachmentdomain "github.com/founderspw/somanager/internal/attachment/domain"
	catalogdomain "github.com/founderspw/somanager/internal/catalog/domain"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	invoicedomain "github.com/founderspw/somanager/internal/invoice/domain"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
)

func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&catalogdomain.Item{},
		&customerdomain.Customer{},
		&customerdomain.PaymentProfile{},
		&customerdomain.ContractedService{},
		&staffdomain.Member{},
		&sodomain.Order{},
		&sodomain.LineEntry{},
		&invoicedomain.InvoiceRecord{},
		&invoicedomain.InvoiceSequence{},
		&attachmentdomain.Attachment{},
	)
}
