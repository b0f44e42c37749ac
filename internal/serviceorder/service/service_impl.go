package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/founderspw/somanager/internal/catalog/domain"
	"github.com/founderspw/somanager/internal/clock"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	"github.com/founderspw/somanager/internal/serviceorder/domain"
	"github.com/founderspw/somanager/internal/serviceorder/schedule"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	CatalogSvc  catalogdomain.Service
	CustomerSvc customerdomain.Service
	StaffSvc    staffdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
	staffSvc    staffdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("serviceorder.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		catalogSvc:  p.CatalogSvc,
		customerSvc: p.CustomerSvc,
		staffSvc:    p.StaffSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	customer, err := s.customerSvc.GetByID(ctx, req.CustomerID)
	if err != nil {
		return domain.Order{}, err
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:           s.genID.Generate(),
		CustomerID:   customer.ID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Notes:        req.Notes,
		Status:       domain.StatusDraft,
		ScheduledFor: req.ScheduledFor,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *order, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListOrderFilter) ([]domain.Order, error) {
	query := domain.ListOrderQuery{
		Status:        filter.Status,
		ScheduledFrom: filter.ScheduledFrom,
		ScheduledTo:   filter.ScheduledTo,
	}
	if filter.Status != "" {
		if _, err := domain.ParseStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}
	if filter.CustomerID != "" {
		id, err := parseID(filter.CustomerID)
		if err != nil {
			return nil, err
		}
		query.CustomerID = id
	}
	if filter.AssignedStaffID != "" {
		id, err := parseID(filter.AssignedStaffID)
		if err != nil {
			return nil, err
		}
		query.AssignedStaffID = id
	}
	return s.repo.List(ctx, s.db, query)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrderRequest) (domain.Order, error) {
	orderID, err := parseID(req.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": s.clock.Now()}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.ScheduledFor != nil {
		fields["scheduled_for"] = *req.ScheduledFor
	}

	if err := s.repo.UpdateFields(ctx, s.db, orderID, fields); err != nil {
		return domain.Order{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orderID, err := parseID(id)
	if err != nil {
		return err
	}
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, orderID)
}

// SetStatus applies one edge of the transition table. Invoiced cannot
// be entered here: it is a side effect of invoice assembly, which
// allocates the invoice number in the same transaction.
func (s *Service) SetStatus(ctx context.Context, id string, target domain.Status) (domain.Order, error) {
	if _, err := domain.ParseStatus(string(target)); err != nil {
		return domain.Order{}, err
	}

	orderID, err := parseID(id)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	if target == domain.StatusInvoiced {
		return domain.Order{}, domain.ErrIllegalTransition
	}
	if !domain.CanTransition(order.Status, target) {
		return domain.Order{}, domain.ErrIllegalTransition
	}

	err = s.repo.UpdateFields(ctx, s.db, orderID, map[string]any{
		"status":     target,
		"updated_at": s.clock.Now(),
	})
	if err != nil {
		return domain.Order{}, err
	}

	order.Status = target
	return *order, nil
}

func (s *Service) Assign(ctx context.Context, orderID, staffID string) (domain.Order, error) {
	id, err := parseID(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	member, err := s.staffSvc.GetByID(ctx, staffID)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	// Re-assigning the same member is a no-op, matching the
	// idempotent assignment behavior of the staff dialog.
	if order.AssignedStaffID != nil && *order.AssignedStaffID == member.ID {
		return *order, nil
	}

	err = s.repo.UpdateFields(ctx, s.db, id, map[string]any{
		"assigned_staff_id": member.ID,
		"updated_at":        s.clock.Now(),
	})
	if err != nil {
		return domain.Order{}, err
	}

	order.AssignedStaffID = &member.ID
	return *order, nil
}

func (s *Service) Unassign(ctx context.Context, orderID string) (domain.Order, error) {
	id, err := parseID(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	err = s.repo.UpdateFields(ctx, s.db, id, map[string]any{
		"assigned_staff_id": nil,
		"updated_at":        s.clock.Now(),
	})
	if err != nil {
		return domain.Order{}, err
	}

	order.AssignedStaffID = nil
	return *order, nil
}

func (s *Service) AddLine(ctx context.Context, req domain.AddLineRequest) (domain.LineEntry, error) {
	orderID, err := parseID(req.OrderID)
	if err != nil {
		return domain.LineEntry{}, err
	}
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.LineEntry{}, err
	}
	if order == nil {
		return domain.LineEntry{}, domain.ErrNotFound
	}
	if order.Status.LinesFrozen() {
		return domain.LineEntry{}, domain.ErrOrderFrozen
	}

	if !req.Quantity.IsPositive() {
		return domain.LineEntry{}, domain.ErrInvalidQuantity
	}
	if req.OverridePriceCents != nil && *req.OverridePriceCents < 0 {
		return domain.LineEntry{}, domain.ErrInvalidPrice
	}

	item, err := s.catalogSvc.GetByID(ctx, req.CatalogID)
	if err != nil {
		return domain.LineEntry{}, err
	}

	line := domain.LineEntry{
		ID:                  s.genID.Generate(),
		OrderID:             orderID,
		CatalogID:           item.ID,
		Name:                item.Name,
		Unit:                item.Unit,
		UnitPriceCents:      item.UnitPriceCents,
		Taxable:             item.Taxable,
		Quantity:            req.Quantity,
		OverridePriceCents:  req.OverridePriceCents,
		OverrideDescription: req.OverrideDescription,
		Position:            len(order.Lines),
		CreatedAt:           s.clock.Now(),
	}

	if err := s.repo.InsertLine(ctx, s.db, &line); err != nil {
		return domain.LineEntry{}, err
	}
	return line, nil
}

func (s *Service) RemoveLine(ctx context.Context, orderID, lineID string) error {
	oid, err := parseID(orderID)
	if err != nil {
		return err
	}
	lid, err := parseID(lineID)
	if err != nil {
		return err
	}
	order, err := s.repo.FindByID(ctx, s.db, oid)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status.LinesFrozen() {
		return domain.ErrOrderFrozen
	}
	return s.repo.DeleteLine(ctx, s.db, oid, lid)
}

func (s *Service) NextDue(ctx context.Context, customerID string) (*time.Time, error) {
	customer, err := s.customerSvc.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Cadence == "" {
		return nil, domain.ErrNoCadence
	}

	base, err := s.repo.LastScheduledFor(ctx, s.db, customer.ID)
	if err != nil {
		return nil, err
	}
	from := s.clock.Now()
	if base != nil {
		from = *base
	}
	next := schedule.NextDue(customer.Cadence, from)
	return &next, nil
}

// CreateNext materializes the customer's next recurring order,
// scheduled per cadence and seeded with the contracted service lines
// at their current prices.
func (s *Service) CreateNext(ctx context.Context, customerID string) (domain.Order, error) {
	customer, err := s.customerSvc.GetByID(ctx, customerID)
	if err != nil {
		return domain.Order{}, err
	}
	if customer.Cadence == "" {
		return domain.Order{}, domain.ErrNoCadence
	}

	next, err := s.NextDue(ctx, customerID)
	if err != nil {
		return domain.Order{}, err
	}

	contracts, err := s.customerSvc.ListContracted(ctx, customerID)
	if err != nil {
		return domain.Order{}, err
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:           s.genID.Generate(),
		CustomerID:   customer.ID,
		Title:        schedule.Title(customer.Cadence),
		Status:       domain.StatusScheduled,
		ScheduledFor: next,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}
		position := 0
		for _, contract := range contracts {
			if !contract.Active {
				continue
			}
			item, err := s.catalogSvc.GetByID(ctx, contract.CatalogID.String())
			if err != nil {
				return err
			}
			line := domain.LineEntry{
				ID:                 s.genID.Generate(),
				OrderID:            order.ID,
				CatalogID:          item.ID,
				Name:               item.Name,
				Unit:               item.Unit,
				UnitPriceCents:     item.UnitPriceCents,
				Taxable:            item.Taxable,
				Quantity:           decimal.NewFromInt(1),
				OverridePriceCents: contract.UnitPriceCents,
				Position:           position,
				CreatedAt:          now,
			}
			if err := s.repo.InsertLine(ctx, tx, &line); err != nil {
				return err
			}
			order.Lines = append(order.Lines, line)
			position++
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
