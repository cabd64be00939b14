package repository

import (
	"context"

	"lexapi/internal/model"
)

// UserRepository defines data access for staff accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByUsername returns (nil, nil) when the username is unclaimed.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}
