package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"lumina/internal/modules/session/domain"
	sessionout "lumina/internal/modules/session/port/out"
	"lumina/internal/platform/apperrors"
	"lumina/internal/platform/logging"
)

const (
	// Upscale factor for on-screen sharpness, independent of source page size.
	renderScale = 2.0
	// Pages rendered concurrently; publication order stays 1..N regardless.
	renderWorkers = 4
)

type SessionService struct {
	rasterizer sessionout.Rasterizer
	logger     *slog.Logger
}

func NewSessionService(rasterizer sessionout.Rasterizer, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SessionService{rasterizer: rasterizer, logger: logger}
}

// Open spools the source bytes to a transient file, determines the page
// count, and starts incremental rasterization in the background. The load
// is tied to the session lifetime, not to the caller's ctx: it has no
// user-facing cancel, only Close.
func (s *SessionService) Open(ctx context.Context, source domain.Source) (*domain.Session, error) {
	if len(source.Data) == 0 {
		return nil, &apperrors.RenderError{Name: source.Name, Err: fmt.Errorf("empty document")}
	}
	spool, err := os.CreateTemp("", "lumina-*.pdf")
	if err != nil {
		return nil, &apperrors.RenderError{Name: source.Name, Err: fmt.Errorf("spool document: %w", err)}
	}
	spoolPath := spool.Name()
	if _, err := spool.Write(source.Data); err != nil {
		_ = spool.Close()
		_ = os.Remove(spoolPath)
		return nil, &apperrors.RenderError{Name: source.Name, Err: fmt.Errorf("spool document: %w", err)}
	}
	if err := spool.Close(); err != nil {
		_ = os.Remove(spoolPath)
		return nil, &apperrors.RenderError{Name: source.Name, Err: fmt.Errorf("spool document: %w", err)}
	}

	total, err := s.rasterizer.PageCount(ctx, spoolPath)
	if err != nil {
		_ = os.Remove(spoolPath)
		return nil, &apperrors.RenderError{Name: source.Name, Err: err}
	}

	loadCtx, cancel := context.WithCancel(context.Background())
	sess := domain.NewSession(source.Name, source.StoredID, int64(len(source.Data)), spoolPath, total, cancel, func() {
		if err := os.Remove(spoolPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove session spool", "path", spoolPath, "error", err)
		}
	})
	go s.load(loadCtx, sess, spoolPath, total)
	return sess, nil
}

func (s *SessionService) load(ctx context.Context, sess *domain.Session, path string, total int) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkers)
	defer func() { _ = g.Wait() }()

	pages := make([]domain.Page, total)
	done := make([]chan error, total)
	for i := range done {
		done[i] = make(chan error, 1)
	}
	for i := 0; i < total; i++ {
		i := i
		g.Go(func() error {
			page, err := s.rasterizer.RenderPage(gctx, path, i+1, renderScale)
			if err != nil {
				done[i] <- err
				return err
			}
			pages[i] = page
			done[i] <- nil
			return nil
		})
	}

	// Publish strictly in ascending order: page i is only appended once every
	// page before it has been appended, even when renders finish out of order.
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			sess.Finish(ctx.Err())
			return
		case err := <-done[i]:
			if err != nil {
				s.logger.Warn("page render failed", "page", i+1, "error", err)
				sess.Finish(&apperrors.RenderError{Name: sess.SourceName, Err: err})
				return
			}
			sess.AppendPage(pages[i])
		}
	}
	sess.Finish(nil)
}
