package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, member *Member) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Member, error)
	List(ctx context.Context, db *gorm.DB, filter ListMemberFilter) ([]Member, error)
	Save(ctx context.Context, db *gorm.DB, member *Member) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
