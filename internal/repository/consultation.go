package repository

import (
	"context"

	"lexapi/internal/model"
)

// ConsultationFilter narrows List results. At most one field is honored,
// in this order of precedence: Data, NomeCliente, CPFCliente. All empty
// means no filtering.
type ConsultationFilter struct {
	Data        *model.Date
	NomeCliente string
	CPFCliente  string
}

// ConsultationRepository defines data access for scheduled consultations.
type ConsultationRepository interface {
	// Create inserts a new consultation row and returns it with its ID.
	Create(ctx context.Context, c *model.Consultation) (*model.Consultation, error)

	// FindByID returns a consultation by ID.
	FindByID(ctx context.Context, id int64) (*model.Consultation, error)

	// FindForDay returns the consultation booked for (cpf, data), if any.
	// excludeID, when non-zero, skips that row so a consultation being
	// rescheduled does not conflict with itself. Returns (nil, nil) when
	// the day is free.
	FindForDay(ctx context.Context, cpf string, data model.Date, excludeID int64) (*model.Consultation, error)

	// List returns consultations matching the filter.
	List(ctx context.Context, f ConsultationFilter) ([]model.Consultation, error)

	// FindBySlot returns consultations at exactly (data, horario).
	FindBySlot(ctx context.Context, data model.Date, horario model.TimeOfDay) ([]model.Consultation, error)

	// Update persists all mutable fields of the consultation.
	Update(ctx context.Context, c *model.Consultation) error

	// Delete removes a consultation by ID.
	Delete(ctx context.Context, id int64) error

	// SyncClientCopies refreshes the denormalized client name/CPF on every
	// consultation owned by the client, keeping projections from drifting.
	SyncClientCopies(ctx context.Context, clientID int64, nome, cpf string) error
}
