package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to callers. Handlers map these to HTTP codes;
// services wrap them with entity context via the helpers below.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrValidation       = errors.New("validation error")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrItemUnavailable  = errors.New("menu item unavailable")
)

func NotFoundf(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}

func InvalidStatef(entity string, id any, state string) error {
	return fmt.Errorf("%s %v is %s: %w", entity, id, state, ErrInvalidState)
}

func Conflictf(entity string, id any, reason string) error {
	return fmt.Errorf("%s %v: %s: %w", entity, id, reason, ErrConflict)
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
