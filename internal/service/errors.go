package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the services. Handlers translate these to HTTP
// statuses; nothing below ever propagates unhandled to the transport layer.
var (
	// ErrValidation tags malformed input (bad date/time literal, invalid
	// slot, bad CPF). Mapped to 422.
	ErrValidation = errors.New("invalid input")

	// ErrMissingParams tags absent required fields. Mapped to 400.
	ErrMissingParams = errors.New("required parameters not provided")

	// ErrNotFound is returned when the addressed resource does not exist.
	ErrNotFound = errors.New("not found")

	// Conflict errors, mapped to 409. Callers must change input, not retry.
	ErrDayConflict    = errors.New("a consultation is already scheduled for this CPF on this date")
	ErrPeriodConflict = errors.New("a consultation is already scheduled for this CPF in this period")
	ErrDuplicateCPF   = errors.New("a client is already registered with this CPF")
	ErrUsernameTaken  = errors.New("username is already in use")

	// ErrInvalidSlot rejects times outside both scheduling windows. It is
	// a validation failure, checked before any conflict lookup.
	ErrInvalidSlot = fmt.Errorf("%w: time is outside the morning and afternoon windows", ErrValidation)

	// ErrInvalidCPF rejects CPFs that are not 1-11 digits.
	ErrInvalidCPF = fmt.Errorf("%w: CPF must contain only digits, at most 11", ErrValidation)

	// ErrInvalidCredentials is returned on failed authentication.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
