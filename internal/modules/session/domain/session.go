package domain

import (
	"image"
	"sync"
)

// Source is a resolvable byte source for a reading session: either a
// store-backed document (StoredID set) or ephemeral bytes from a file that
// could not be persisted.
type Source struct {
	Name     string
	StoredID string
	Data     []byte
}

// Page is one rendered page bitmap. Width and Height are in device pixels
// after upscaling.
type Page struct {
	Number int
	Image  image.Image
	Width  int
	Height int
}

// Event is one step of an incremental load: a page in ascending order, or
// the terminal event (Done true, Err set on total failure).
type Event struct {
	Page *Page
	Err  error
	Done bool
}

// Session is the in-memory working state of one open document. Pages are
// append-only while loading and immutable afterwards; consumers must treat
// the sequence as potentially partial until Loading reports false. The view
// that opened the session owns it and must call Close on every exit path.
type Session struct {
	SourceName string
	StoredID   string
	ByteSize   int64

	spool   string
	total   int
	cancel  func()
	cleanup func()

	mu      sync.Mutex
	pages   []Page
	loading bool
	loadErr error

	events    chan Event
	closeOnce sync.Once
}

// NewSession is called by the session service once the page count is known.
// cancel stops in-flight rendering; cleanup releases the transient spool
// resource. The events channel is buffered for the whole load so the loader
// never blocks on an abandoned consumer.
func NewSession(name, storedID string, size int64, spool string, total int, cancel, cleanup func()) *Session {
	return &Session{
		SourceName: name,
		StoredID:   storedID,
		ByteSize:   size,
		spool:      spool,
		total:      total,
		cancel:     cancel,
		cleanup:    cleanup,
		loading:    true,
		events:     make(chan Event, total+1),
	}
}

// SpoolPath is the transient on-disk copy the rasterizer reads from. Valid
// until Close.
func (s *Session) SpoolPath() string { return s.spool }

// TotalPages is the page count of the source. Pages() reaches this length
// only once loading finishes.
func (s *Session) TotalPages() int { return s.total }

// Pages returns a snapshot of the pages published so far, always in
// ascending order 1..N.
func (s *Session) Pages() []Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the terminal load error, if the load failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Events delivers load progress. The channel is closed after the terminal
// event.
func (s *Session) Events() <-chan Event { return s.events }

// AppendPage publishes the next page. Loader-only.
func (s *Session) AppendPage(p Page) {
	s.mu.Lock()
	s.pages = append(s.pages, p)
	s.mu.Unlock()
	s.events <- Event{Page: &p}
}

// Finish marks the load terminal. Loader-only, called exactly once.
func (s *Session) Finish(err error) {
	s.mu.Lock()
	s.loading = false
	s.loadErr = err
	s.mu.Unlock()
	s.events <- Event{Done: true, Err: err}
	close(s.events)
}

// Close cancels any in-flight rendering and releases the spool resource.
// Idempotent, and required on every exit path including abandonment
// mid-load and the error path.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.cleanup != nil {
			s.cleanup()
		}
	})
}
