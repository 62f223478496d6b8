package attendance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet     = "Attendance"
	exportTimestamp = "2006-01-02 15:04"
)

var exportHeader = []interface{}{"ID", "User ID", "Date", "Clock In", "Clock Out", "Hours", "Value", "Location", "Notes"}

// Export writes the records matching filter as an xlsx workbook.
func (s *Service) Export(ctx context.Context, filter ListFilter, w io.Writer) (int, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return 0, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(exportSheet, "A", "I", 16); err != nil {
		return 0, err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := []interface{}{
			rec.ID,
			rec.UserID,
			rec.Date,
			formatTime(rec.ClockIn),
			formatTime(rec.ClockOut),
			fmt.Sprintf("%.2f", rec.Worked().Hours()),
			rec.Value,
			rec.Location,
			rec.Notes,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return 0, err
		}
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "attendance exported", "rows", len(records))
	return len(records), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(exportTimestamp)
}
