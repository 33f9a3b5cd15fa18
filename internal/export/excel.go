package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"shareit/internal/models"
)

const sheetName = "Bookings"

// WriteBookingsReport writes the booking rows into an xlsx file under
// dir and returns the file path.
func WriteBookingsReport(dir string, rows []models.BookingReportRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	header := []any{"ID", "Item", "Owner", "Booker", "Start", "End", "Status"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("error writing header: %w", err)
	}

	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheetName, "A1", "G1", style)
	_ = f.SetColWidth(sheetName, "B", "D", 20)
	_ = f.SetColWidth(sheetName, "E", "F", 22)

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.BookingID,
			row.ItemName,
			row.OwnerName,
			row.BookerName,
			row.Start.Format(time.RFC3339),
			row.End.Format(time.RFC3339),
			string(row.Status),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return "", fmt.Errorf("error writing row %d: %w", i, err)
		}
	}

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}
	return filePath, nil
}
