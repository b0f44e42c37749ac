package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspw/somanager/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := db.WithContext(ctx).Order("name asc").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&domain.PaymentProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&domain.ContractedService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Customer{}, "id = ?", id).Error
	})
}

func (r *repo) ListProfiles(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.PaymentProfile, error) {
	var profiles []domain.PaymentProfile
	err := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id asc").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repo) InsertProfile(ctx context.Context, db *gorm.DB, profile *domain.PaymentProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) SetDefaultProfile(ctx context.Context, db *gorm.DB, customerID, profileID snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.PaymentProfile{}).
			Where("customer_id = ?", customerID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.PaymentProfile{}).
			Where("id = ? AND customer_id = ?", profileID, customerID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrProfileNotFound
		}
		return nil
	})
}

func (r *repo) ListContracted(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.ContractedService, error) {
	var contracts []domain.ContractedService
	err := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id asc").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *repo) InsertContracted(ctx context.Context, db *gorm.DB, contract *domain.ContractedService) error {
	return db.WithContext(ctx).Create(contract).Error
}

func (r *repo) DeleteContracted(ctx context.Context, db *gorm.DB, customerID, contractID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", contractID, customerID).
		Delete(&domain.ContractedService{}).Error
}
