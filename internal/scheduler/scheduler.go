// Package scheduler materializes upcoming recurring service orders
// from customer cadences in the background.
package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/founderspw/somanager/internal/clock"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
)

var ErrInvalidConfig = errors.New("scheduler requires db, log, order service and clock")

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	OrderSvc sodomain.Service
	Clock    clock.Clock
	Config   Config `optional:"true"`
}

type Scheduler struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      Config
	orderSvc sodomain.Service
	clock    clock.Clock
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.OrderSvc == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:       p.DB,
		log:      p.Log.Named("scheduler"),
		cfg:      p.Config.withDefaults(),
		orderSvc: p.OrderSvc,
		clock:    p.Clock,
	}, nil
}

// RunOnce scans every cadenced customer and creates the next scheduled
// order when its due date falls inside the lead window. Failures on one
// customer never stop the scan.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	var customers []customerdomain.Customer
	err := s.db.WithContext(ctx).
		Where("cadence <> ''").
		Order("id asc").
		Find(&customers).Error
	if err != nil {
		return err
	}

	horizon := s.clock.Now().AddDate(0, 0, s.cfg.LeadDays)

	var created int
	for _, cust := range customers {
		due, err := s.orderSvc.NextDue(ctx, cust.ID.String())
		if err != nil {
			s.log.Warn("next due computation failed",
				zap.String("customer_id", cust.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if due == nil || due.After(horizon) {
			continue
		}

		order, err := s.orderSvc.CreateNext(ctx, cust.ID.String())
		if err != nil {
			s.log.Warn("recurring order creation failed",
				zap.String("customer_id", cust.ID.String()),
				zap.Error(err),
			)
			continue
		}
		created++
		s.log.Info("recurring order created",
			zap.String("customer_id", cust.ID.String()),
			zap.String("order_id", order.ID.String()),
			zap.Timep("scheduled_for", order.ScheduledFor),
		)
	}

	if created > 0 {
		s.log.Info("scheduler run complete", zap.Int("created", created))
	}
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Error("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
