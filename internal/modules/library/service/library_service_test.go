package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lumina/internal/modules/library/domain"
	"lumina/internal/modules/library/service"
	"lumina/internal/platform/apperrors"
)

// fakeStore is an in-memory DocumentStore with switchable failures.
type fakeStore struct {
	docs    map[string]domain.DocumentFile
	order   []string
	next    int
	failPut bool
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]domain.DocumentFile{}}
}

func (f *fakeStore) Put(_ context.Context, name string, data []byte) (domain.Document, error) {
	if f.failPut || f.failAll {
		return domain.Document{}, &apperrors.PersistenceError{Op: "put", Err: errors.New("disk full")}
	}
	f.next++
	doc := domain.Document{
		ID:        fmt.Sprintf("doc-%03d", f.next),
		Name:      name,
		Size:      int64(len(data)),
		CreatedAt: time.Date(2025, 6, 1, 0, 0, f.next, 0, time.UTC),
	}
	f.docs[doc.ID] = domain.DocumentFile{Document: doc, Data: data}
	f.order = append([]string{doc.ID}, f.order...)
	return doc, nil
}

func (f *fakeStore) List(context.Context) ([]domain.Document, error) {
	if f.failAll {
		return nil, &apperrors.PersistenceError{Op: "list", Err: errors.New("db gone")}
	}
	docs := make([]domain.Document, 0, len(f.order))
	for _, id := range f.order {
		docs = append(docs, f.docs[id].Document)
	}
	return docs, nil
}

func (f *fakeStore) Get(_ context.Context, docID string) (domain.DocumentFile, error) {
	if f.failAll {
		return domain.DocumentFile{}, &apperrors.PersistenceError{Op: "get", Err: errors.New("db gone")}
	}
	file, ok := f.docs[docID]
	if !ok {
		return domain.DocumentFile{}, apperrors.ErrNotFound
	}
	return file, nil
}

func (f *fakeStore) Remove(_ context.Context, docID string) error {
	if f.failAll {
		return &apperrors.PersistenceError{Op: "remove", Err: errors.New("db gone")}
	}
	delete(f.docs, docID)
	for i, id := range f.order {
		if id == docID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func TestImportPrependsNewestFirst(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewLibraryService(store, nil)
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if _, stored, err := svc.Import(ctx, name, []byte(name)); err != nil || !stored {
			t.Fatalf("import %s: stored=%v err=%v", name, stored, err)
		}
	}

	docs := svc.Documents()
	want := []string{"c.pdf", "b.pdf", "a.pdf"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(docs))
	}
	for i, name := range want {
		if docs[i].Name != name {
			t.Fatalf("position %d: got %s, want %s", i, docs[i].Name, name)
		}
	}
}

func TestImportRejectsEmptyName(t *testing.T) {
	t.Parallel()
	svc := service.NewLibraryService(newFakeStore(), nil)
	if _, _, err := svc.Import(context.Background(), "", []byte("x")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestImportFallsBackToEphemeral(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewLibraryService(store, nil)
	ctx := context.Background()

	if _, _, err := svc.Import(ctx, "kept.pdf", []byte("k")); err != nil {
		t.Fatalf("seed import: %v", err)
	}
	store.failPut = true

	data := []byte("ephemeral bytes")
	file, stored, err := svc.Import(ctx, "lost.pdf", data)
	if err != nil {
		t.Fatalf("persistence failure must not surface as an error, got %v", err)
	}
	if stored {
		t.Fatalf("expected stored=false on put failure")
	}
	if file.Name != "lost.pdf" || string(file.Data) != string(data) {
		t.Fatalf("ephemeral file must carry the original bytes, got %+v", file.Document)
	}

	docs := svc.Documents()
	if len(docs) != 1 || docs[0].Name != "kept.pdf" {
		t.Fatalf("library list must be unchanged by a failed import, got %+v", docs)
	}
}

func TestRefreshKeepsCacheOnFailure(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewLibraryService(store, nil)
	ctx := context.Background()

	if _, _, err := svc.Import(ctx, "a.pdf", []byte("a")); err != nil {
		t.Fatalf("import: %v", err)
	}
	store.failAll = true

	docs := svc.Refresh(ctx)
	if len(docs) != 1 || docs[0].Name != "a.pdf" {
		t.Fatalf("refresh failure must return the cached list, got %+v", docs)
	}
}

func TestDeleteKeepsEntryOnFailure(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewLibraryService(store, nil)
	ctx := context.Background()

	file, _, err := svc.Import(ctx, "a.pdf", []byte("a"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	store.failAll = true

	if err := svc.DeleteExisting(ctx, file.ID); err == nil {
		t.Fatalf("expected delete error")
	}
	if docs := svc.Documents(); len(docs) != 1 {
		t.Fatalf("failed delete must keep the entry visible, got %d entries", len(docs))
	}

	store.failAll = false
	if err := svc.DeleteExisting(ctx, file.ID); err != nil {
		t.Fatalf("retry delete: %v", err)
	}
	if docs := svc.Documents(); len(docs) != 0 {
		t.Fatalf("expected empty library after delete, got %d entries", len(docs))
	}
}

func TestOpenExistingMissing(t *testing.T) {
	t.Parallel()
	svc := service.NewLibraryService(newFakeStore(), nil)
	if _, err := svc.OpenExisting(context.Background(), "gone"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
