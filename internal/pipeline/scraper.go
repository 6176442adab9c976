package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/mepower/internal/model"
)

// Scraper runs one walk and assembles its records.
type Scraper struct {
	walker *Walker
	now    func() time.Time
	logger *slog.Logger
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithClock replaces time.Now, which stamps the error record.
func WithClock(now func() time.Time) ScraperOption {
	return func(s *Scraper) {
		s.now = now
	}
}

// WithScraperLogger sets the logger.
func WithScraperLogger(logger *slog.Logger) ScraperOption {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// NewScraper creates a Scraper around walker.
func NewScraper(walker *Walker, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		walker: walker,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Run walks the portal and returns the records to emit. Scrape failures are
// folded into the records; the only error returned is the context's.
func (s *Scraper) Run(ctx context.Context) ([]model.OutageRecord, error) {
	walk, err := s.walker.Walk(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	switch {
	case errors.Is(err, ErrNoOutageData):
		s.logger.Info("portal reports no outages")
	case err != nil:
		s.logger.Error("scrape failed", "error", err)
	}

	return Assemble(walk, err, s.now()), nil
}
