package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lumina/internal/modules/library/domain"
	libraryout "lumina/internal/modules/library/port/out"
	"lumina/internal/platform/apperrors"
	"lumina/internal/platform/clock"
	"lumina/internal/platform/id"

	_ "modernc.org/sqlite"
)

// SQLiteDocumentStore persists documents as blobs in a single-table sqlite
// database. The handle is opened lazily: concurrent first calls converge on
// one initialized connection and the schema runs exactly once.
type SQLiteDocumentStore struct {
	dbPath string
	clock  clock.Clock
	idGen  id.Generator

	openOnce sync.Once
	db       *sql.DB
	openErr  error
}

func NewSQLiteDocumentStore(dbPath string, clk clock.Clock, idGen id.Generator) libraryout.DocumentStore {
	return &SQLiteDocumentStore{dbPath: dbPath, clock: clk, idGen: idGen}
}

func (s *SQLiteDocumentStore) open(ctx context.Context) (*sql.DB, error) {
	s.openOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
			s.openErr = fmt.Errorf("create db dir: %w", err)
			return
		}
		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			s.openErr = fmt.Errorf("open sqlite: %w", err)
			return
		}
		// created_at holds integer Unix nanoseconds: SQL ordering on the
		// column is then chronological, which text timestamps do not
		// guarantee for sub-second values.
		const ddl = `
CREATE TABLE IF NOT EXISTS documents (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  data BLOB NOT NULL,
  size INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
`
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			s.openErr = fmt.Errorf("create documents table: %w", err)
			return
		}
		s.db = db
	})
	if s.openErr != nil {
		return nil, &apperrors.PersistenceError{Op: "open", Err: s.openErr}
	}
	return s.db, nil
}

func (s *SQLiteDocumentStore) Put(ctx context.Context, name string, data []byte) (domain.Document, error) {
	db, err := s.open(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	doc := domain.Document{
		ID:        s.idGen.New(),
		Name:      name,
		Size:      int64(len(data)),
		CreatedAt: s.clock.Now(),
	}
	if err := doc.Validate(); err != nil {
		return domain.Document{}, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Document{}, &apperrors.PersistenceError{Op: "put", Err: err}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, name, data, size, created_at) VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Name, data, doc.Size, doc.CreatedAt.UnixNano(),
	)
	if err != nil {
		_ = tx.Rollback()
		return domain.Document{}, &apperrors.PersistenceError{Op: "put", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.Document{}, &apperrors.PersistenceError{Op: "put", Err: err}
	}
	return doc, nil
}

func (s *SQLiteDocumentStore) List(ctx context.Context) ([]domain.Document, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	// rowid breaks ties between equal timestamps so repeated reads stay stable.
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, size, created_at FROM documents ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var createdAt int64
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Size, &createdAt); err != nil {
			return nil, &apperrors.PersistenceError{Op: "list", Err: err}
		}
		doc.CreatedAt = time.Unix(0, createdAt).UTC()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperrors.PersistenceError{Op: "list", Err: err}
	}
	return docs, nil
}

func (s *SQLiteDocumentStore) Get(ctx context.Context, docID string) (domain.DocumentFile, error) {
	db, err := s.open(ctx)
	if err != nil {
		return domain.DocumentFile{}, err
	}
	var file domain.DocumentFile
	var createdAt int64
	err = db.QueryRowContext(ctx,
		`SELECT id, name, data, size, created_at FROM documents WHERE id = ?`, docID,
	).Scan(&file.ID, &file.Name, &file.Data, &file.Size, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DocumentFile{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.DocumentFile{}, &apperrors.PersistenceError{Op: "get", Err: err}
	}
	file.CreatedAt = time.Unix(0, createdAt).UTC()
	return file, nil
}

func (s *SQLiteDocumentStore) Remove(ctx context.Context, docID string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, docID); err != nil {
		return &apperrors.PersistenceError{Op: "remove", Err: err}
	}
	return nil
}
