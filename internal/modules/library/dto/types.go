package dto

import "time"

type DocumentOutput struct {
	ID        string
	Name      string
	Size      int64
	SizeLabel string
	CreatedAt time.Time
}

// OpenOutput carries the resolved bytes of a stored document, ready to be
// turned into a reading session.
type OpenOutput struct {
	ID   string
	Name string
	Data []byte
}

// ImportOutput reports an import. Stored is false when persistence failed
// and the document is only readable for the current run; in that case
// Document is zero and the caller must not show a library entry.
type ImportOutput struct {
	Document DocumentOutput
	Stored   bool
	Name     string
	Data     []byte
}
