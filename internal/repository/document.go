package repository

import (
	"context"

	"lexapi/internal/model"
)

// DocumentRepository defines data access for document metadata rows.
// The physical file is managed separately by the storage layer.
type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) (*model.Document, error)
	FindByID(ctx context.Context, id int64) (*model.Document, error)
	List(ctx context.Context) ([]model.Document, error)
	Update(ctx context.Context, d *model.Document) error
	Delete(ctx context.Context, id int64) error
}

// FilingRepository defines data access for procedural filing metadata rows.
type FilingRepository interface {
	Create(ctx context.Context, f *model.Filing) (*model.Filing, error)
	FindByID(ctx context.Context, id int64) (*model.Filing, error)
	List(ctx context.Context) ([]model.Filing, error)
	Update(ctx context.Context, f *model.Filing) error
	Delete(ctx context.Context, id int64) error
}
