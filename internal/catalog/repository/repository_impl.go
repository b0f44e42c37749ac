package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspw/somanager/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListItemFilter) ([]domain.Item, error) {
	var items []domain.Item
	stmt := db.WithContext(ctx).Model(&domain.Item{})
	if filter.ActiveOnly {
		stmt = stmt.Where("active = ?", true)
	}
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	err := stmt.Order("name asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Save(item).Error
}
