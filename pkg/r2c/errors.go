package r2c

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrCancelled indicates the user backed out of a screen with the back
	// button. This is normal flow control, not an infrastructure failure.
	ErrCancelled = errors.New("operation cancelled by user")

	// ErrWindowClosed indicates the window was closed or the close button
	// was tapped. Callers leave the application rather than go back.
	ErrWindowClosed = errors.New("window closed by user")

	// ErrNoPages is returned when the carousel screen is started without
	// any page to show.
	ErrNoPages = errors.New("carousel has no pages")
)

// InfrastructureError reports a failure of the kiosk frontend itself (SDL,
// window, renderer or font setup). The caller cannot recover from it at the
// menu level.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "init", "render")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("r2c: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("r2c: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsCancelled checks if an error indicates user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsWindowClosed checks if an error reports that the user closed the window.
func IsWindowClosed(err error) bool {
	return errors.Is(err, ErrWindowClosed)
}
