package service

import (
	"context"
	"sort"

	"github.com/founderspw/somanager/internal/bulk/domain"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	OrderSvc sodomain.Service
}

type Service struct {
	log      *zap.Logger
	orderSvc sodomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("bulk.service"),
		orderSvc: p.OrderSvc,
	}
}

// Apply runs the action against every selected order independently.
// Orders are processed in sorted id order so results are reproducible,
// each order's mutation is all-or-nothing, and one failure never
// aborts the rest. There is no rollback across the set.
func (s *Service) Apply(ctx context.Context, orderIDs []string, action domain.Action) (domain.Result, error) {
	if len(orderIDs) == 0 {
		return domain.Result{}, domain.ErrEmptySelection
	}

	switch action.Type {
	case domain.ActionSetStatus:
		if _, err := sodomain.ParseStatus(string(action.TargetStatus)); err != nil {
			return domain.Result{}, domain.ErrInvalidAction
		}
	case domain.ActionAssignStaff:
		if action.StaffID == "" {
			return domain.Result{}, domain.ErrInvalidAction
		}
	case domain.ActionDelete:
	default:
		return domain.Result{}, domain.ErrInvalidAction
	}

	ids := dedupeSorted(orderIDs)

	result := domain.Result{Items: make([]domain.ItemResult, 0, len(ids))}
	for _, id := range ids {
		err := s.applyOne(ctx, id, action)
		item := domain.ItemResult{OrderID: id, OK: err == nil}
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			s.log.Debug("bulk item failed",
				zap.String("order_id", id),
				zap.String("action", string(action.Type)),
				zap.Error(err),
			)
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

func (s *Service) applyOne(ctx context.Context, orderID string, action domain.Action) error {
	switch action.Type {
	case domain.ActionSetStatus:
		_, err := s.orderSvc.SetStatus(ctx, orderID, action.TargetStatus)
		return err
	case domain.ActionAssignStaff:
		_, err := s.orderSvc.Assign(ctx, orderID, action.StaffID)
		return err
	case domain.ActionDelete:
		return s.orderSvc.Delete(ctx, orderID)
	default:
		return domain.ErrInvalidAction
	}
}

func dedupeSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
