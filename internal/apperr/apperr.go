package apperr

import "errors"

// Sentinel categories for everything the attempt subsystem can fail with.
// Services wrap these with fmt.Errorf("...: %w", ...) to add context;
// controllers pick the HTTP status with errors.Is.
var (
	// ErrUnauthenticated means no valid caller identity was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller is not the attempt owner and not an admin.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput means the request shape or an enum value is malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means a referenced question or attempt does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the operation violates the attempt state machine,
	// e.g. answering a finished attempt or re-answering a question.
	ErrConflict = errors.New("conflict")
	// ErrStorage means the record store was unavailable or rejected a write.
	ErrStorage = errors.New("storage error")
)
