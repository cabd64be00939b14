package repository

import (
	"context"

	"lexapi/internal/model"
)

// ClientFilter narrows List results. Zero-value fields are ignored.
// Nome matches as a case-insensitive substring; CPF matches exactly.
type ClientFilter struct {
	Nome string
	CPF  string
}

// ClientRepository defines data access for clients. No business logic here —
// strictly persistence operations.
type ClientRepository interface {
	// Create inserts a new client row and returns it with its generated ID.
	Create(ctx context.Context, c *model.Client) (*model.Client, error)

	// FindByID returns a client by its surrogate ID.
	FindByID(ctx context.Context, id int64) (*model.Client, error)

	// FindByCPF returns the client holding the given CPF, or (nil, nil)
	// when no client is registered under it.
	FindByCPF(ctx context.Context, cpf string) (*model.Client, error)

	// List returns clients matching the filter, ordered by registration date.
	List(ctx context.Context, f ClientFilter) ([]model.Client, error)

	// Update persists name, CPF and update-timestamp changes.
	Update(ctx context.Context, c *model.Client) error

	// Delete removes a client; associated consultations and documents are
	// removed by the schema's ON DELETE CASCADE.
	Delete(ctx context.Context, id int64) error
}
