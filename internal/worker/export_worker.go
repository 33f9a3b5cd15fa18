package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/export"
	"shareit/internal/models"
)

// ReportSource supplies the denormalized booking rows for the report.
type ReportSource interface {
	GetBookingReport(ctx context.Context) ([]models.BookingReportRow, error)
}

// ExportWorker rebuilds the xlsx bookings report off the hot path.
// Requests are debounced through a size-1 queue: while a rebuild is
// already pending, further requests collapse into it.
type ExportWorker struct {
	source ReportSource
	dir    string
	queue  chan struct{}
	policy RetryPolicy
	logger *zerolog.Logger
}

func NewExportWorker(source ReportSource, dir string, logger *zerolog.Logger) *ExportWorker {
	return &ExportWorker{
		source: source,
		dir:    dir,
		queue:  make(chan struct{}, 1),
		policy: RetryPolicy{
			MaxRetries:    3,
			InitialDelay:  time.Second,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2,
		},
		logger: logger,
	}
}

// RequestExport schedules a report rebuild. Never blocks.
func (w *ExportWorker) RequestExport() {
	select {
	case w.queue <- struct{}{}:
	default:
	}
}

// Start processes the queue until the context is cancelled.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Str("dir", w.dir).Msg("export worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("export worker stopped")
			return
		case <-w.queue:
			w.rebuild(ctx)
		}
	}
}

func (w *ExportWorker) rebuild(ctx context.Context) {
	for attempt := 1; attempt <= w.policy.MaxRetries; attempt++ {
		rows, err := w.source.GetBookingReport(ctx)
		if err == nil {
			var path string
			path, err = export.WriteBookingsReport(w.dir, rows)
			if err == nil {
				w.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("bookings report written")
				return
			}
		}

		w.logger.Error().Err(err).Int("attempt", attempt).Msg("export failed")
		if attempt == w.policy.MaxRetries {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.policy.NextDelay(attempt)):
		}
	}
}
