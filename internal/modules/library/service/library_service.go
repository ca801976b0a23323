package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"lumina/internal/modules/library/domain"
	libraryout "lumina/internal/modules/library/port/out"
	"lumina/internal/platform/apperrors"
	"lumina/internal/platform/logging"
)

// LibraryService is a read-through cache over the document store. It owns
// the ordered in-memory list the UI displays and keeps it consistent with
// durable state: cache mutations happen only after the store confirms.
type LibraryService struct {
	store  libraryout.DocumentStore
	logger *slog.Logger

	mu   sync.Mutex
	docs []domain.Document
}

func NewLibraryService(store libraryout.DocumentStore, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LibraryService{store: store, logger: logger}
}

// Refresh replaces the cached list wholesale. A store failure is non-fatal:
// the previous list is kept, the error is logged, and the caller gets the
// cached view.
func (s *LibraryService) Refresh(ctx context.Context) []domain.Document {
	docs, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("library refresh failed, keeping cached list", "error", err)
		return s.Documents()
	}
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	return docs
}

// Documents returns a snapshot of the cached ordered list.
func (s *LibraryService) Documents() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// OpenExisting resolves the stored bytes without mutating the store.
func (s *LibraryService) OpenExisting(ctx context.Context, docID string) (domain.DocumentFile, error) {
	file, err := s.store.Get(ctx, docID)
	if err != nil {
		return domain.DocumentFile{}, err
	}
	return file, nil
}

// DeleteExisting removes the record from the store, then evicts it from the
// cache. On failure the entry stays visible so the displayed list never
// disagrees with durable state; the delete is retryable.
func (s *LibraryService) DeleteExisting(ctx context.Context, docID string) error {
	if err := s.store.Remove(ctx, docID); err != nil {
		s.logger.Warn("delete failed, keeping library entry", "id", docID, "error", err)
		return err
	}
	s.mu.Lock()
	for i, doc := range s.docs {
		if doc.ID == docID {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Import stores the file and prepends it to the cache, preserving the
// newest-first order without a full refresh. When persistence fails the
// bytes are still returned for an ephemeral read-now session, cache
// untouched and no entry added.
func (s *LibraryService) Import(ctx context.Context, name string, data []byte) (domain.DocumentFile, bool, error) {
	if name == "" {
		return domain.DocumentFile{}, false, fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	doc, err := s.store.Put(ctx, name, data)
	if err != nil {
		if apperrors.IsPersistence(err) {
			s.logger.Warn("import not durable, falling back to ephemeral session", "name", name, "error", err)
			return domain.DocumentFile{Document: domain.Document{Name: name, Size: int64(len(data))}, Data: data}, false, nil
		}
		return domain.DocumentFile{}, false, err
	}
	s.mu.Lock()
	s.docs = append([]domain.Document{doc}, s.docs...)
	s.mu.Unlock()
	return domain.DocumentFile{Document: doc, Data: data}, true, nil
}

// ImportFile reads a document from disk and imports it under its base name.
func (s *LibraryService) ImportFile(ctx context.Context, path string) (domain.DocumentFile, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.DocumentFile{}, false, fmt.Errorf("read document: %w", err)
	}
	return s.Import(ctx, filepath.Base(path), data)
}
