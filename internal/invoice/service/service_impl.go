package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/founderspw/somanager/internal/clock"
	"github.com/founderspw/somanager/internal/config"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	"github.com/founderspw/somanager/internal/invoice/domain"
	"github.com/founderspw/somanager/internal/invoice/format"
	"github.com/founderspw/somanager/internal/providers/pdf"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Cfg       config.Config
	Invoicing *config.InvoicingConfigHolder
	PDF       pdf.Generator
}

// Service owns invoice assembly and the invoice ledger. A single mutex
// serializes assembly so sequence allocation stays strictly increasing
// even on SQLite, which has no row locks.
type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	cfg       config.Config
	invoicing *config.InvoicingConfigHolder
	pdf       pdf.Generator

	mu sync.Mutex
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		cfg:       p.Cfg,
		invoicing: p.Invoicing,
		pdf:       p.PDF,
	}
}

func (s *Service) Assemble(ctx context.Context, orderID string) (*domain.Invoice, error) {
	id, err := parseID(orderID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var order sodomain.Order
	err = s.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, sodomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case sodomain.StatusCompleted:
	case sodomain.StatusInvoiced, sodomain.StatusClosed:
		return nil, domain.ErrAlreadyInvoiced
	default:
		return nil, domain.ErrNotInvoiceable
	}
	if len(order.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	var cust customerdomain.Customer
	if err := s.db.WithContext(ctx).First(&cust, "id = ?", order.CustomerID).Error; err != nil {
		return nil, err
	}

	var staff *domain.StaffSnapshot
	if order.AssignedStaffID != nil {
		var member staffdomain.Member
		err := s.db.WithContext(ctx).First(&member, "id = ?", *order.AssignedStaffID).Error
		if err == nil {
			staff = &domain.StaffSnapshot{ID: member.ID, Name: member.Name, Role: member.Role}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	icfg := s.invoicing.Get()
	rate := decimal.NewFromFloat(icfg.TaxRate)
	totals := ComputeTotals(order.Lines, rate)

	now := s.clock.Now()
	due := now.AddDate(0, 0, icfg.TermsDays)

	var record domain.InvoiceRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seqRow := domain.InvoiceSequence{ID: 1, NextSeq: 1}
		if err := tx.Where("id = ?", 1).FirstOrCreate(&seqRow).Error; err != nil {
			return err
		}
		seq := seqRow.NextSeq
		if err := tx.Model(&domain.InvoiceSequence{}).
			Where("id = ?", 1).
			Update("next_seq", seq+1).Error; err != nil {
			return err
		}

		number, err := format.FormatInvoiceNumber(icfg.NumberTemplate, now, seq, order.ID.String())
		if err != nil {
			return err
		}

		record = domain.InvoiceRecord{
			ID:            s.genID.Generate(),
			Seq:           seq,
			Number:        number,
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			Status:        domain.RecordStatusIssued,
			SubtotalCents: totals.SubtotalCents,
			TaxCents:      totals.TaxCents,
			TotalCents:    totals.TotalCents,
			TaxRate:       rate,
			IssuedAt:      now,
			DueAt:         due,
			CreatedAt:     now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		res := tx.Model(&sodomain.Order{}).
			Where("id = ? AND status = ?", order.ID, sodomain.StatusCompleted).
			Updates(map[string]interface{}{
				"status":     sodomain.StatusInvoiced,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return domain.ErrNotInvoiceable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		Number:  record.Number,
		Seq:     record.Seq,
		OrderID: order.ID,
		Customer: domain.CustomerSnapshot{
			ID:      cust.ID,
			Name:    cust.Name,
			Phone:   cust.Phone,
			Email:   cust.Email,
			Address: cust.Address,
		},
		Staff:         staff,
		Lines:         totals.Lines,
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		TaxRate:       rate,
		IssuedAt:      now,
		DueAt:         due,
		Notes:         order.Notes,
	}

	// The invoice is issued once the transaction commits. Rendering is
	// best effort; a failed render leaves pdf_path empty.
	if path, err := s.renderPDF(ctx, inv, icfg); err != nil {
		s.log.Warn("invoice pdf render failed",
			zap.String("number", inv.Number),
			zap.Error(err),
		)
	} else {
		inv.PDFPath = path
		if err := s.db.WithContext(ctx).Model(&domain.InvoiceRecord{}).
			Where("id = ?", record.ID).
			Update("pdf_path", path).Error; err != nil {
			s.log.Warn("invoice pdf path update failed",
				zap.String("number", inv.Number),
				zap.Error(err),
			)
		}
	}

	s.log.Info("invoice issued",
		zap.String("number", inv.Number),
		zap.Int64("seq", inv.Seq),
		zap.String("order_id", order.ID.String()),
		zap.Int64("total_cents", inv.TotalCents),
	)
	return inv, nil
}

func (s *Service) renderPDF(ctx context.Context, inv *domain.Invoice, icfg config.InvoicingConfig) (string, error) {
	reader, err := s.pdf.GenerateInvoice(ctx, inv, icfg)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	dir := s.cfg.InvoiceDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, inv.Number+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) Reopen(ctx context.Context, orderID string) error {
	id, err := parseID(orderID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var order sodomain.Order
	err = s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sodomain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if order.Status != sodomain.StatusInvoiced {
		return domain.ErrNotReopenable
	}

	now := s.clock.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record domain.InvoiceRecord
		err := tx.Where("order_id = ? AND status = ?", id, domain.RecordStatusIssued).
			Order("seq desc").
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&domain.InvoiceRecord{}).
			Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"status":    domain.RecordStatusVoid,
				"voided_at": now,
			}).Error; err != nil {
			return err
		}

		res := tx.Model(&sodomain.Order{}).
			Where("id = ? AND status = ?", id, sodomain.StatusInvoiced).
			Updates(map[string]interface{}{
				"status":     sodomain.StatusCompleted,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return domain.ErrNotReopenable
		}

		s.log.Info("invoice voided",
			zap.String("number", record.Number),
			zap.String("order_id", id.String()),
		)
		return nil
	})
}

func (s *Service) GetRecord(ctx context.Context, id string) (*domain.InvoiceRecord, error) {
	recordID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var record domain.InvoiceRecord
	err = s.db.WithContext(ctx).First(&record, "id = ?", recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) GetRecordByOrder(ctx context.Context, orderID string) (*domain.InvoiceRecord, error) {
	id, err := parseID(orderID)
	if err != nil {
		return nil, err
	}

	var record domain.InvoiceRecord
	err = s.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("seq desc").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) ListRecords(ctx context.Context, q domain.ListRecordQuery) ([]domain.InvoiceRecord, error) {
	stmt := s.db.WithContext(ctx).Model(&domain.InvoiceRecord{})

	if q.OrderID != "" {
		id, err := parseID(q.OrderID)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("order_id = ?", id)
	}
	if q.CustomerID != "" {
		id, err := parseID(q.CustomerID)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("customer_id = ?", id)
	}
	if q.Status != "" {
		stmt = stmt.Where("status = ?", strings.ToUpper(strings.TrimSpace(q.Status)))
	}

	records := []domain.InvoiceRecord{}
	if err := stmt.Order("seq desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
