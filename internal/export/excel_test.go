package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shareit/internal/models"
)

func TestWriteBookingsReport(t *testing.T) {
	dir := t.TempDir()

	rows := []models.BookingReportRow{
		{
			BookingID:  1,
			ItemName:   "Drill",
			OwnerName:  "Owner",
			BookerName: "Booker",
			Start:      time.Unix(1_700_000_000, 0),
			End:        time.Unix(1_700_003_600, 0),
			Status:     models.StatusApproved,
		},
		{
			BookingID:  2,
			ItemName:   "Saw",
			OwnerName:  "Owner",
			BookerName: "Other",
			Start:      time.Unix(1_700_100_000, 0),
			End:        time.Unix(1_700_103_600, 0),
			Status:     models.StatusWaiting,
		},
	}

	path, err := WriteBookingsReport(dir, rows)
	require.NoError(t, err)
	assert.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	name, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Drill", name)

	status, err := f.GetCellValue(sheetName, "G3")
	require.NoError(t, err)
	assert.Equal(t, "WAITING", status)
}

func TestWriteBookingsReport_EmptyRows(t *testing.T) {
	path, err := WriteBookingsReport(t.TempDir(), nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
