package application

import (
	"errors"
	"fmt"

	"scenelink/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrStructuralConflict   = errors.New("structural conflict")
	ErrNotFound             = errors.New("not found")
	ErrInvalidData          = errors.New("invalid data")
	ErrIOFailure            = errors.New("io failure")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StructuralError rejects a write that would mix link and plain content on a node
type StructuralError struct {
	Path   domain.Path
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("cannot write %s: %s", e.Path, e.Reason)
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrStructuralConflict
}

// ModeError rejects an operation the handle's open mode does not allow
type ModeError struct {
	Op   string
	Mode domain.OpenMode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("%s not supported in %s mode", e.Op, e.Mode)
}

func (e *ModeError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// LinkError reports a link that could not be followed
type LinkError struct {
	Path   domain.Path
	Target string
	Reason string
	Err    error
}

func (e *LinkError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("link at %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("link at %s to %s: %s", e.Path, e.Target, e.Reason)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing file or node
type NotFoundError struct {
	What string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IOError wraps a failure of the underlying storage
func IOError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w", op, errors.Join(ErrIOFailure, err))
}
