package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspw/somanager/internal/clock"
	"github.com/founderspw/somanager/internal/staff/domain"
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
		log:   p.Log.Named("staff.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Member, error) {
	memberID, err := parseID(id)
	if err != nil {
		return domain.Member{}, err
	}
	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}
	return *member, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListMemberFilter) ([]domain.Member, error) {
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Create(ctx context.Context, req domain.CreateMemberRequest) (domain.Member, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Member{}, domain.ErrInvalidName
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "Technician"
	}

	now := s.clock.Now()
	member := domain.Member{
		ID:        s.genID.Generate(),
		Name:      name,
		Role:      role,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &member); err != nil {
		return domain.Member{}, err
	}
	return member, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateMemberRequest) (domain.Member, error) {
	memberID, err := parseID(req.ID)
	if err != nil {
		return domain.Member{}, err
	}
	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Member{}, domain.ErrInvalidName
		}
		member.Name = name
	}
	if req.Role != nil {
		member.Role = strings.TrimSpace(*req.Role)
	}
	if req.Phone != nil {
		member.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		member.Email = strings.TrimSpace(*req.Email)
	}
	if req.Active != nil {
		member.Active = *req.Active
	}
	member.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, member); err != nil {
		return domain.Member{}, err
	}
	return *member, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	memberID, err := parseID(id)
	if err != nil {
		return err
	}
	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, memberID)
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
