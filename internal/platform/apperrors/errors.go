package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrNoDocument   = errors.New("no document open")
	ErrUnconfigured = errors.New("capability not configured")
	ErrInvalidInput = errors.New("invalid input")
)

// PersistenceError marks failures of the durable store: unavailable medium,
// full disk, aborted transaction. Callers degrade (ephemeral session, kept
// list) rather than abort.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return "persistence: " + e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// RenderError marks a document that could not be rasterized. Terminal for
// the session that tried to open it; the library entry stays intact.
type RenderError struct {
	Name string
	Err  error
}

func (e *RenderError) Error() string { return "render " + e.Name + ": " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// RemoteServiceError marks an unavailable remote capability (summarization).
// Always recoverable; the user sees a static fallback instead.
type RemoteServiceError struct {
	Service string
	Err     error
}

func (e *RemoteServiceError) Error() string { return e.Service + ": " + e.Err.Error() }
func (e *RemoteServiceError) Unwrap() error { return e.Err }

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func IsRender(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}
