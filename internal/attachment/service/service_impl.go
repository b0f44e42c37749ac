package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/founderspw/somanager/internal/attachment/domain"
	"github.com/founderspw/somanager/internal/clock"
	"github.com/founderspw/somanager/internal/config"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Cfg   config.Config
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	cfg   config.Config
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("attachment.service"),
		genID: p.GenID,
		clock: p.Clock,
		cfg:   p.Cfg,
	}
}

func (s *Service) Attach(ctx context.Context, orderID, fileName, contentType, note string, r io.Reader) (domain.Attachment, error) {
	oid, err := snowflake.ParseString(strings.TrimSpace(orderID))
	if err != nil {
		return domain.Attachment{}, sodomain.ErrInvalidID
	}

	fileName = strings.TrimSpace(filepath.Base(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return domain.Attachment{}, domain.ErrInvalidName
	}

	var order sodomain.Order
	err = s.db.WithContext(ctx).Select("id").First(&order, "id = ?", oid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Attachment{}, sodomain.ErrNotFound
	}
	if err != nil {
		return domain.Attachment{}, err
	}

	stored := uuid.NewString() + filepath.Ext(fileName)
	dir := s.cfg.AttachmentDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Attachment{}, err
	}

	path := filepath.Join(dir, stored)
	f, err := os.Create(path)
	if err != nil {
		return domain.Attachment{}, err
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return domain.Attachment{}, err
	}

	att := domain.Attachment{
		ID:          s.genID.Generate(),
		OrderID:     oid,
		FileName:    fileName,
		StoredName:  stored,
		ContentType: contentType,
		SizeBytes:   size,
		Note:        strings.TrimSpace(note),
		CreatedAt:   s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&att).Error; err != nil {
		os.Remove(path)
		return domain.Attachment{}, err
	}
	return att, nil
}

func (s *Service) List(ctx context.Context, orderID string) ([]domain.Attachment, error) {
	oid, err := snowflake.ParseString(strings.TrimSpace(orderID))
	if err != nil {
		return nil, sodomain.ErrInvalidID
	}

	atts := []domain.Attachment{}
	err = s.db.WithContext(ctx).
		Where("order_id = ?", oid).
		Order("created_at asc, id asc").
		Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

func (s *Service) Open(ctx context.Context, id string) (domain.Attachment, io.ReadCloser, error) {
	att, err := s.find(ctx, id)
	if err != nil {
		return domain.Attachment{}, nil, err
	}

	f, err := os.Open(filepath.Join(s.cfg.AttachmentDir(), att.StoredName))
	if err != nil {
		return domain.Attachment{}, nil, err
	}
	return att, f, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	att, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&domain.Attachment{}, "id = ?", att.ID).Error; err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.cfg.AttachmentDir(), att.StoredName)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("attachment file removal failed",
			zap.String("stored_name", att.StoredName),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) find(ctx context.Context, id string) (domain.Attachment, error) {
	attID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Attachment{}, domain.ErrInvalidID
	}

	var att domain.Attachment
	err = s.db.WithContext(ctx).First(&att, "id = ?", attID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Attachment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Attachment{}, err
	}
	return att, nil
}
