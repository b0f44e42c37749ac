package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspw/somanager/internal/serviceorder/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, query domain.ListOrderQuery) ([]domain.Order, error) {
	var orders []domain.Order
	stmt := db.WithContext(ctx).Model(&domain.Order{})
	if query.CustomerID != 0 {
		stmt = stmt.Where("customer_id = ?", query.CustomerID)
	}
	if query.AssignedStaffID != 0 {
		stmt = stmt.Where("assigned_staff_id = ?", query.AssignedStaffID)
	}
	if query.Status != "" {
		stmt = stmt.Where("status = ?", query.Status)
	}
	if query.ScheduledFrom != nil {
		stmt = stmt.Where("scheduled_for >= ?", *query.ScheduledFrom)
	}
	if query.ScheduledTo != nil {
		stmt = stmt.Where("scheduled_for < ?", *query.ScheduledTo)
	}
	err := stmt.
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Order("scheduled_for asc, id asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.LineEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ?", id).Error
	})
}

func (r *repo) InsertLine(ctx context.Context, db *gorm.DB, line *domain.LineEntry) error {
	return db.WithContext(ctx).Create(line).Error
}

func (r *repo) DeleteLine(ctx context.Context, db *gorm.DB, orderID, lineID snowflake.ID) error {
	res := db.WithContext(ctx).
		Where("id = ? AND order_id = ?", lineID, orderID).
		Delete(&domain.LineEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *repo) LastScheduledFor(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*time.Time, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Where("customer_id = ? AND scheduled_for IS NOT NULL", customerID).
		Order("scheduled_for desc").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return order.ScheduledFor, nil
}
