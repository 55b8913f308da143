package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrMalformedToken        = errors.New("malformed token")
	ErrCodeMismatch          = errors.New("invalid verification code")
	ErrMissingInput          = errors.New("token and code are required")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrAccountExists         = errors.New("account is already taken")
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrVehicleUnavailable    = errors.New("vehicle unavailable")
	ErrShipmentInUse         = errors.New("shipment still has linked orders")
	ErrTooManyRequests       = errors.New("too many requests")
	ErrDatabaseError         = errors.New("database error")
	ErrInternal              = errors.New("internal error")
)

// NotFoundError names the entity that a lookup failed to resolve.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " Not Found"
}

func (e *NotFoundError) Code() string {
	return strings.ToUpper(e.Entity) + "_NOT_FOUND"
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Transition wraps ErrInvalidTransition with the entity and the state it was in.
func Transition(entity, id, detail string) error {
	return fmt.Errorf("%w: %s %s %s", ErrInvalidTransition, entity, id, detail)
}
