package out

import (
	"context"

	"lumina/internal/modules/library/domain"
)

// DocumentStore is the durable mapping from id to stored document. Put and
// Remove are atomic per record: they either fully succeed or leave prior
// state unchanged. Failures surface as *apperrors.PersistenceError.
type DocumentStore interface {
	// Put assigns a fresh id, captures name, size and timestamp, and stores
	// the bytes verbatim.
	Put(ctx context.Context, name string, data []byte) (domain.Document, error)
	// List returns metadata for every stored document ordered by creation
	// time descending, stable across repeated reads absent mutation.
	List(ctx context.Context) ([]domain.Document, error)
	// Get returns the full record including bytes. apperrors.ErrNotFound for
	// an absent id.
	Get(ctx context.Context, id string) (domain.DocumentFile, error)
	// Remove deletes the record if present. An absent id is not an error.
	Remove(ctx context.Context, id string) error
}
