package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/founderspw/somanager/internal/catalog/domain"
	"github.com/founderspw/somanager/internal/clock"
	"github.com/founderspw/somanager/internal/customer/domain"
	"github.com/founderspw/somanager/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	CatalogSvc catalogdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	catalogSvc catalogdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("customer.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		catalogSvc: p.CatalogSvc,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}
	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Address:   strings.TrimSpace(req.Address),
		Notes:     req.Notes,
		Cadence:   strings.TrimSpace(req.Cadence),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateName
		}
		return domain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	customerID, err := parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.Cadence != nil {
		customer.Cadence = strings.TrimSpace(*req.Cadence)
	}
	customer.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateName
		}
		return domain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	customerID, err := parseID(id)
	if err != nil {
		return err
	}
	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, customerID)
}

func (s *Service) ListProfiles(ctx context.Context, customerID string) ([]domain.PaymentProfile, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListProfiles(ctx, s.db, id)
}

func (s *Service) CreateProfile(ctx context.Context, req domain.CreateProfileRequest) (domain.PaymentProfile, error) {
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return domain.PaymentProfile{}, err
	}

	method := strings.ToLower(strings.TrimSpace(req.Method))
	switch method {
	case domain.MethodACH, domain.MethodCard, domain.MethodCheck, domain.MethodOther:
	case "":
		method = domain.MethodOther
	default:
		return domain.PaymentProfile{}, domain.ErrInvalidMethod
	}

	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.PaymentProfile{}, err
	}
	if customer == nil {
		return domain.PaymentProfile{}, domain.ErrNotFound
	}

	existing, err := s.repo.ListProfiles(ctx, s.db, customerID)
	if err != nil {
		return domain.PaymentProfile{}, err
	}

	profile := domain.PaymentProfile{
		ID:               s.genID.Generate(),
		CustomerID:       customerID,
		Method:           method,
		ACHRouting:       strings.TrimSpace(req.ACHRouting),
		ACHAccount:       strings.TrimSpace(req.ACHAccount),
		CardBrand:        strings.TrimSpace(req.CardBrand),
		CardLast4:        strings.TrimSpace(req.CardLast4),
		CardName:         strings.TrimSpace(req.CardName),
		CardExpMonth:     req.CardExpMonth,
		CardExpYear:      req.CardExpYear,
		BillStreet:       req.BillStreet,
		BillCityStateZip: strings.TrimSpace(req.BillCityStateZip),
		IsDefault:        len(existing) == 0,
		CreatedAt:        s.clock.Now(),
	}

	if err := s.repo.InsertProfile(ctx, s.db, &profile); err != nil {
		return domain.PaymentProfile{}, err
	}
	return profile, nil
}

func (s *Service) SetDefaultProfile(ctx context.Context, customerID, profileID string) error {
	cid, err := parseID(customerID)
	if err != nil {
		return err
	}
	pid, err := parseID(profileID)
	if err != nil {
		return err
	}
	return s.repo.SetDefaultProfile(ctx, s.db, cid, pid)
}

func (s *Service) ListContracted(ctx context.Context, customerID string) ([]domain.ContractedService, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListContracted(ctx, s.db, id)
}

func (s *Service) Contract(ctx context.Context, req domain.ContractRequest) (domain.ContractedService, error) {
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return domain.ContractedService{}, err
	}

	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.ContractedService{}, err
	}
	if customer == nil {
		return domain.ContractedService{}, domain.ErrNotFound
	}

	// Validates the catalog reference; NotFound surfaces as-is.
	item, err := s.catalogSvc.GetByID(ctx, req.CatalogID)
	if err != nil {
		return domain.ContractedService{}, err
	}

	contract := domain.ContractedService{
		ID:             s.genID.Generate(),
		CustomerID:     customerID,
		CatalogID:      item.ID,
		UnitPriceCents: req.UnitPriceCents,
		Active:         true,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.repo.InsertContracted(ctx, s.db, &contract); err != nil {
		return domain.ContractedService{}, err
	}
	return contract, nil
}

func (s *Service) Uncontract(ctx context.Context, customerID, contractID string) error {
	cid, err := parseID(customerID)
	if err != nil {
		return err
	}
	ctid, err := parseID(contractID)
	if err != nil {
		return err
	}
	return s.repo.DeleteContracted(ctx, s.db, cid, ctid)
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
