package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspw/somanager/internal/catalog/domain"
	"github.com/founderspw/somanager/internal/clock"
	"github.com/founderspw/somanager/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Item, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListItemFilter) ([]domain.Item, error) {
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Item{}, domain.ErrInvalidName
	}
	if req.UnitPriceCents < 0 {
		return domain.Item{}, domain.ErrInvalidPrice
	}

	now := s.clock.Now()
	item := domain.Item{
		ID:             s.genID.Generate(),
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		UnitPriceCents: req.UnitPriceCents,
		Unit:           strings.TrimSpace(req.Unit),
		Taxable:        req.Taxable,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateName
		}
		return domain.Item{}, err
	}

	return item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateItemRequest) (domain.Item, error) {
	itemID, err := parseID(req.ID)
	if err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Item{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.UnitPriceCents != nil {
		if *req.UnitPriceCents < 0 {
			return domain.Item{}, domain.ErrInvalidPrice
		}
		item.UnitPriceCents = *req.UnitPriceCents
	}
	if req.Unit != nil {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Taxable != nil {
		item.Taxable = *req.Taxable
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateName
		}
		return domain.Item{}, err
	}

	return *item, nil
}

// Deactivate hides the item from new order lines. Existing line
// snapshots keep their captured price and taxable flag.
func (s *Service) Deactivate(ctx context.Context, id string) (domain.Item, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}

	item.Active = false
	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.Item{}, err
	}
	return *item, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
