package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrBusinessRule       = errors.New("business rule violation")
)

// NotFoundError reports a missing entity by kind and identifier.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidTransitionError is returned when an operation is attempted from the wrong status.
type InvalidTransitionError struct {
	Operation string
	Actual    string
	Expected  []string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: invalid action for status %s (expected %s)",
		e.Operation, e.Actual, strings.Join(e.Expected, " or "))
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// RuleViolationError carries a human readable reason for a rejected request.
type RuleViolationError struct {
	Reason string
}

func (e *RuleViolationError) Error() string {
	return e.Reason
}

func (e *RuleViolationError) Is(target error) bool {
	return target == ErrBusinessRule
}

// RuleViolation builds a RuleViolationError.
func RuleViolation(reason string) error {
	return &RuleViolationError{Reason: reason}
}
