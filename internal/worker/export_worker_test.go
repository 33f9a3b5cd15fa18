package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/models"
)

type stubReportSource struct {
	rows  []models.BookingReportRow
	calls chan struct{}
}

func (s *stubReportSource) GetBookingReport(ctx context.Context) ([]models.BookingReportRow, error) {
	select {
	case s.calls <- struct{}{}:
	default:
	}
	return s.rows, nil
}

func TestExportWorker_WritesReport(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()

	source := &stubReportSource{
		rows: []models.BookingReportRow{
			{
				BookingID:  1,
				ItemName:   "Drill",
				OwnerName:  "Owner",
				BookerName: "Booker",
				Start:      time.Unix(1_700_000_000, 0),
				End:        time.Unix(1_700_003_600, 0),
				Status:     models.StatusApproved,
			},
		},
		calls: make(chan struct{}, 1),
	}

	worker := NewExportWorker(source, dir, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	worker.RequestExport()

	select {
	case <-source.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("report source was never queried")
	}

	// The xlsx file appears shortly after the source call.
	require.Eventually(t, func() bool {
		entries, err := os.ReadDir(dir)
		return err == nil && len(entries) == 1
	}, 5*time.Second, 50*time.Millisecond)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(entries[0].Name()))
}

func TestExportWorker_RequestExportNeverBlocks(t *testing.T) {
	logger := zerolog.Nop()
	worker := NewExportWorker(&stubReportSource{calls: make(chan struct{}, 1)}, t.TempDir(), &logger)

	// Without a running loop the queue holds one pending request; further
	// requests collapse into it instead of blocking.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			worker.RequestExport()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RequestExport blocked")
	}
}
