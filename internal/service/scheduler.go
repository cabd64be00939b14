package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lexapi/internal/clock"
	"lexapi/internal/model"
	"lexapi/internal/repository"
)

// Scheduling windows, inclusive on both ends, in minutes since midnight.
// The gap (12:00, 13:00) and anything before 09:00 or after 18:00 is not
// a bookable slot.
const (
	morningStart   = 9 * 60
	morningEnd     = 12 * 60
	afternoonStart = 13 * 60
	afternoonEnd   = 18 * 60
)

type period int

const (
	periodMorning period = iota + 1
	periodAfternoon
)

// periodOf classifies a time into one of the two daily windows. ok is
// false when the time falls outside both.
func periodOf(t model.TimeOfDay) (p period, ok bool) {
	m := t.Minutes()
	switch {
	case m >= morningStart && m <= morningEnd:
		return periodMorning, true
	case m >= afternoonStart && m <= afternoonEnd:
		return periodAfternoon, true
	default:
		return 0, false
	}
}

// ScheduleInput carries the fields of a booking request. Data and Horario
// are wire literals (dd/mm/yyyy, HH:MM) validated before anything else.
type ScheduleInput struct {
	NomeCliente string
	CPFCliente  string
	Data        string
	Horario     string
	Detalhes    string
}

// RescheduleInput carries a partial update; nil fields inherit the value
// of the existing consultation.
type RescheduleInput struct {
	NomeCliente *string
	CPFCliente  *string
	Data        *string
	Horario     *string
	Detalhes    *string
}

// FindFilter narrows Find results. At most one criterion is applied, with
// precedence date > client name > CPF > none.
type FindFilter struct {
	Data        string
	NomeCliente string
	CPFCliente  string
}

// ConsultationService is the scheduling and conflict-resolution engine.
type ConsultationService interface {
	// Schedule validates the request, runs the day and period conflict
	// checks, lazily creates the client when the CPF is unknown and
	// persists the booking.
	Schedule(ctx context.Context, in ScheduleInput) (*model.Consultation, error)

	// Reschedule applies a partial update, re-running the conflict checks
	// against other consultations (never against the one being moved) and
	// refreshing the linked client's denormalized copies.
	Reschedule(ctx context.Context, id int64, in RescheduleInput) (*model.Consultation, error)

	// Cancel removes a booking.
	Cancel(ctx context.Context, id int64) error

	// Get returns one consultation by ID.
	Get(ctx context.Context, id int64) (*model.Consultation, error)

	// Find lists consultations, applying at most one filter.
	Find(ctx context.Context, f FindFilter) ([]model.Consultation, error)

	// FindToday lists consultations for today's date in the office timezone.
	FindToday(ctx context.Context) ([]model.Consultation, error)

	// FindBySlot lists consultations at an exact (date, time) pair. Both
	// literals are mandatory.
	FindBySlot(ctx context.Context, data, horario string) ([]model.Consultation, error)
}

type consultationService struct {
	consultations repository.ConsultationRepository
	clients       repository.ClientRepository
	clk           clock.Clock
}

// NewConsultationService constructs the scheduler.
func NewConsultationService(consultations repository.ConsultationRepository, clients repository.ClientRepository, clk clock.Clock) ConsultationService {
	return &consultationService{consultations: consultations, clients: clients, clk: clk}
}

func (s *consultationService) Schedule(ctx context.Context, in ScheduleInput) (*model.Consultation, error) {
	if in.NomeCliente == "" || in.CPFCliente == "" || in.Data == "" || in.Horario == "" {
		return nil, ErrMissingParams
	}
	if !validCPF(in.CPFCliente) {
		return nil, ErrInvalidCPF
	}
	data, err := model.ParseDate(in.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	horario, err := model.ParseTimeOfDay(in.Horario)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	// Slot validity is input validation, rejected before any conflict query.
	if _, ok := periodOf(horario); !ok {
		return nil, ErrInvalidSlot
	}

	if err := s.checkConflicts(ctx, in.CPFCliente, data, horario, 0); err != nil {
		return nil, err
	}

	client, err := s.resolveClient(ctx, in.NomeCliente, in.CPFCliente)
	if err != nil {
		return nil, err
	}

	created, err := s.consultations.Create(ctx, &model.Consultation{
		NomeCliente:      in.NomeCliente,
		CPFCliente:       in.CPFCliente,
		DataConsulta:     data,
		HorarioConsulta:  horario,
		DetalhesConsulta: in.Detalhes,
		ClienteID:        client.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create consultation: %w", err)
	}
	return created, nil
}

func (s *consultationService) Reschedule(ctx context.Context, id int64, in RescheduleInput) (*model.Consultation, error) {
	existing, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Unsupplied fields inherit from the existing record.
	merged := *existing
	if in.NomeCliente != nil {
		merged.NomeCliente = *in.NomeCliente
	}
	if in.CPFCliente != nil {
		merged.CPFCliente = *in.CPFCliente
	}
	if in.Data != nil {
		data, err := model.ParseDate(*in.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		merged.DataConsulta = data
	}
	if in.Horario != nil {
		horario, err := model.ParseTimeOfDay(*in.Horario)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		merged.HorarioConsulta = horario
	}
	if in.Detalhes != nil {
		merged.DetalhesConsulta = *in.Detalhes
	}

	if !validCPF(merged.CPFCliente) {
		return nil, ErrInvalidCPF
	}
	if _, ok := periodOf(merged.HorarioConsulta); !ok {
		return nil, ErrInvalidSlot
	}

	if err := s.checkConflicts(ctx, merged.CPFCliente, merged.DataConsulta, merged.HorarioConsulta, id); err != nil {
		return nil, err
	}

	if err := s.consultations.Update(ctx, &merged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update consultation: %w", err)
	}

	// Keep the owning client and its other denormalized copies in step.
	if err := s.refreshClient(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// checkConflicts enforces day-exclusivity and then period-exclusivity for
// (cpf, data), in that order. excludeID skips the consultation being
// rescheduled. An empty day trivially satisfies both checks. Concurrent
// bookings that race past these advisory reads are stopped by the unique
// constraint on (cpf_cliente, data_consulta).
func (s *consultationService) checkConflicts(ctx context.Context, cpf string, data model.Date, horario model.TimeOfDay, excludeID int64) error {
	existing, err := s.consultations.FindForDay(ctx, cpf, data, excludeID)
	if err != nil {
		return fmt.Errorf("conflict check: %w", err)
	}
	if existing != nil {
		return ErrDayConflict
	}
	// Re-probe for the period rule; a booking committed between the two
	// reads surfaces here instead of as a constraint violation.
	existing, err = s.consultations.FindForDay(ctx, cpf, data, excludeID)
	if err != nil {
		return fmt.Errorf("conflict check: %w", err)
	}
	if existing == nil {
		return nil
	}
	return checkPeriodFree(existing.HorarioConsulta, horario)
}

// checkPeriodFree reports ErrPeriodConflict when booked and requested
// fall inside the same daily window.
func checkPeriodFree(booked, requested model.TimeOfDay) error {
	bookedPeriod, ok := periodOf(booked)
	if !ok {
		return nil
	}
	requestedPeriod, ok := periodOf(requested)
	if !ok {
		return ErrInvalidSlot
	}
	if bookedPeriod == requestedPeriod {
		return ErrPeriodConflict
	}
	return nil
}

// resolveClient finds the client owning cpf or registers one on the fly.
func (s *consultationService) resolveClient(ctx context.Context, nome, cpf string) (*model.Client, error) {
	client, err := s.clients.FindByCPF(ctx, cpf)
	if err != nil {
		return nil, fmt.Errorf("resolve client: %w", err)
	}
	if client != nil {
		return client, nil
	}
	client, err = s.clients.Create(ctx, &model.Client{
		NomeCliente:  nome,
		CPFCliente:   cpf,
		DataCadastro: model.Timestamp{Time: s.clk.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}
	return client, nil
}

// refreshClient propagates the consultation's client name/CPF back to the
// owning client row and to its other consultations.
func (s *consultationService) refreshClient(ctx context.Context, c *model.Consultation) error {
	client, err := s.clients.FindByID(ctx, c.ClienteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load client: %w", err)
	}
	client.NomeCliente = c.NomeCliente
	client.CPFCliente = c.CPFCliente
	client.DataAtualizacao = &model.Timestamp{Time: s.clk.Now()}
	if err := s.clients.Update(ctx, client); err != nil {
		return fmt.Errorf("refresh client: %w", err)
	}
	if err := s.consultations.SyncClientCopies(ctx, client.ID, client.NomeCliente, client.CPFCliente); err != nil {
		return fmt.Errorf("sync client copies: %w", err)
	}
	return nil
}

func (s *consultationService) Cancel(ctx context.Context, id int64) error {
	if err := s.consultations.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *consultationService) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	c, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *consultationService) Find(ctx context.Context, f FindFilter) ([]model.Consultation, error) {
	var filter repository.ConsultationFilter
	switch {
	case f.Data != "":
		data, err := model.ParseDate(f.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		filter.Data = &data
	case f.NomeCliente != "":
		filter.NomeCliente = f.NomeCliente
	case f.CPFCliente != "":
		filter.CPFCliente = f.CPFCliente
	}
	return s.consultations.List(ctx, filter)
}

func (s *consultationService) FindToday(ctx context.Context) ([]model.Consultation, error) {
	today := model.Date{Time: s.clk.Now()}
	return s.consultations.List(ctx, repository.ConsultationFilter{Data: &today})
}

func (s *consultationService) FindBySlot(ctx context.Context, data, horario string) ([]model.Consultation, error) {
	if data == "" || horario == "" {
		return nil, ErrMissingParams
	}
	d, err := model.ParseDate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	h, err := model.ParseTimeOfDay(horario)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.consultations.FindBySlot(ctx, d, h)
}

// validCPF accepts 1-11 digit strings, nothing else.
func validCPF(cpf string) bool {
	if len(cpf) == 0 || len(cpf) > 11 {
		return false
	}
	for _, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
