// Package domain contains file attachment models for service orders.
package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound    = errors.New("attachment_not_found")
	ErrInvalidID   = errors.New("invalid_attachment_id")
	ErrInvalidName = errors.New("invalid_attachment_name")
)

// Attachment is a file stored against a service order. The original
// filename is kept for display; the on-disk name is a generated UUID so
// collisions and path traversal are impossible.
type Attachment struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID snowflake.ID `gorm:"not null;index" json:"order_id"`

	FileName    string `gorm:"type:text;not null" json:"file_name"`
	StoredName  string `gorm:"type:text;not null;uniqueIndex" json:"-"`
	ContentType string `gorm:"type:text" json:"content_type,omitempty"`
	SizeBytes   int64  `gorm:"not null" json:"size_bytes"`
	Note        string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Attachment) TableName() string { return "order_attachments" }

// Service stores and serves order attachments.
type Service interface {
	Attach(ctx context.Context, orderID, fileName, contentType, note string, r io.Reader) (Attachment, error)
	List(ctx context.Context, orderID string) ([]Attachment, error)
	// Open returns the attachment row and a reader over its content.
	// The caller closes the reader.
	Open(ctx context.Context, id string) (Attachment, io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}
