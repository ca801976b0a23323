package domain

import (
	"fmt"
	"strings"
	"time"
)

// Document is the persisted record for an uploaded file. Every field is
// immutable once stored; records are created on import, read on library load
// and on open, and destroyed on explicit delete, never updated in place.
type Document struct {
	ID        string
	Name      string
	Size      int64
	CreatedAt time.Time
}

// DocumentFile is a Document together with its raw bytes. Size always equals
// len(Data) for a stored file.
type DocumentFile struct {
	Document
	Data []byte
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if d.Size < 0 {
		return fmt.Errorf("size must be non-negative")
	}
	return nil
}
