package service

import (
	"context"
	"log/slog"
	"strings"

	"lumina/internal/modules/summary/domain"
	summaryout "lumina/internal/modules/summary/port/out"
	"lumina/internal/platform/apperrors"
	"lumina/internal/platform/logging"
)

// SummaryService wraps the remote summarization capability. Failures never
// escape past this boundary: the caller always gets displayable text.
type SummaryService struct {
	extractor  summaryout.TextExtractor
	summarizer summaryout.Summarizer
	logger     *slog.Logger
}

func NewSummaryService(extractor summaryout.TextExtractor, summarizer summaryout.Summarizer, logger *slog.Logger) *SummaryService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SummaryService{extractor: extractor, summarizer: summarizer, logger: logger}
}

// Summarize extracts text from the spooled document and asks the remote
// service for a summary. Any failure yields the static fallback message.
func (s *SummaryService) Summarize(ctx context.Context, spoolPath string) string {
	text, err := s.extractor.Text(ctx, spoolPath, domain.MaxSourcePages)
	if err != nil {
		s.logger.Warn("summary text extraction failed", "error", err)
		return domain.UnavailableMessage
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Info("document has no extractable text to summarize")
		return domain.UnavailableMessage
	}
	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		s.logger.Warn("summarization unavailable", "error", &apperrors.RemoteServiceError{Service: "summarizer", Err: err})
		return domain.UnavailableMessage
	}
	return summary
}
