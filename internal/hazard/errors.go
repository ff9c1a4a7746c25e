package hazard

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("hazard not found")
	ErrAuthRequired = errors.New("identity required")
)

// ValidationError reports malformed input. Nothing was changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an unknown hazard id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("hazard %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AuthRequiredError reports an action attempted without a session identity.
type AuthRequiredError struct {
	Action string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("login with Darpan ID required to %s", e.Action)
}

func (e *AuthRequiredError) Is(target error) bool { return target == ErrAuthRequired }
