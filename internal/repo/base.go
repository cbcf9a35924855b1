package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base holds the gorm handle the domain repositories share. Repositories
// embed it and rebind it through their WithTx methods for transactional work.
type Base struct {
	db *gorm.DB
}

// NewBase wraps a gorm connection for embedding.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. A nil ctx yields the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
