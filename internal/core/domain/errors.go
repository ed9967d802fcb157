package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateReference = errors.New("booking reference already exists")
	ErrStaleBooking       = errors.New("booking was modified by another request")
	ErrPriceUnavailable   = errors.New("price unavailable")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError is returned when a requested stay overlaps an existing booking
// or blocked window. Reference names the blocking booking when there is one.
type ConflictError struct {
	Message   string
	Reference string
	Start     Date
	End       Date
}

func (e *ConflictError) Error() string {
	if e.Start.IsZero() {
		return e.Message
	}

	return fmt.Sprintf("%s (%s to %s)", e.Message, e.Start, e.End)
}

type InvalidStateTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target *InvalidStateTransitionError
	return errors.As(err, &target)
}
