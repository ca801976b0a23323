package out_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"lumina/internal/modules/library/adapter/out"
	"lumina/internal/modules/library/domain"
	libraryout "lumina/internal/modules/library/port/out"
	"lumina/internal/platform/apperrors"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type seqIDs struct {
	n int
}

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("doc-%03d", g.n)
}

func newTestStore(t *testing.T) (libraryout.DocumentStore, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := out.NewSQLiteDocumentStore(filepath.Join(t.TempDir(), "library.db"), clk, &seqIDs{})
	return store, clk
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()
	store, clk := newTestStore(t)
	ctx := context.Background()

	data := []byte("%PDF-1.7 payload\x00\x01\x02")
	doc, err := store.Put(ctx, "report.pdf", data)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if doc.ID == "" || doc.Name != "report.pdf" || doc.Size != int64(len(data)) {
		t.Fatalf("unexpected document metadata: %+v", doc)
	}
	if !doc.CreatedAt.Equal(clk.now) {
		t.Fatalf("created_at %v, want %v", doc.CreatedAt, clk.now)
	}

	file, err := store.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(file.Data, data) {
		t.Fatalf("stored bytes differ from original")
	}
	if file.Name != doc.Name || !file.CreatedAt.Equal(doc.CreatedAt) {
		t.Fatalf("metadata differs after round trip: %+v", file.Document)
	}
}

func TestListNewestFirst(t *testing.T) {
	t.Parallel()
	store, clk := newTestStore(t)
	ctx := context.Background()

	noon := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Inserted out of chronological order on purpose. The sub-second
	// neighbors (whole second, .1, .15) sort wrongly under lexicographic
	// text timestamps, so they guard the chronological column encoding.
	inserts := []struct {
		name string
		at   time.Time
	}{
		{"tenth.pdf", noon.Add(100 * time.Millisecond)},
		{"next-day.pdf", noon.Add(24 * time.Hour)},
		{"whole.pdf", noon},
		{"hundred-fifty.pdf", noon.Add(150 * time.Millisecond)},
		{"prev-day.pdf", noon.Add(-24 * time.Hour)},
	}
	for _, in := range inserts {
		clk.now = in.at
		if _, err := store.Put(ctx, in.name, []byte("x")); err != nil {
			t.Fatalf("put %s: %v", in.name, err)
		}
	}

	docs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"next-day.pdf", "hundred-fifty.pdf", "tenth.pdf", "whole.pdf", "prev-day.pdf"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(docs))
	}
	for i, name := range want {
		if docs[i].Name != name {
			t.Fatalf("list not newest-first: got %v, want %v at index %d", listNames(docs), want, i)
		}
	}
}

func TestListEqualTimestampsNewestInsertFirst(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Same clock reading for both; insertion order breaks the tie.
	if _, err := store.Put(ctx, "first.pdf", []byte("x")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "second.pdf", []byte("x")); err != nil {
		t.Fatalf("put: %v", err)
	}

	docs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].Name != "second.pdf" {
		t.Fatalf("expected the later insert first on equal timestamps, got %v", listNames(docs))
	}
}

func listNames(docs []domain.Document) []string {
	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Name
	}
	return names
}

func TestGetMissingDocument(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	if _, err := store.Get(context.Background(), "no-such-id"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Put(ctx, "a.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Remove(ctx, doc.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, doc.ID); err != nil {
		t.Fatalf("second remove must succeed, got %v", err)
	}
	if _, err := store.Get(ctx, doc.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	docs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty library, got %d entries", len(docs))
	}
}
