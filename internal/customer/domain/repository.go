package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB) ([]Customer, error)
	Save(ctx context.Context, db *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	ListProfiles(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]PaymentProfile, error)
	InsertProfile(ctx context.Context, db *gorm.DB, profile *PaymentProfile) error
	SetDefaultProfile(ctx context.Context, db *gorm.DB, customerID, profileID snowflake.ID) error

	ListContracted(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]ContractedService, error)
	InsertContracted(ctx context.Context, db *gorm.DB, contract *ContractedService) error
	DeleteContracted(ctx context.Context, db *gorm.DB, customerID, contractID snowflake.ID) error
}
