// Package export writes tracked-time reports to XLSX workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/top-internal/topctl/internal/domain"
)

const sheetName = "Timesheets"

var headers = []string{"Date", "User", "Job", "Task", "Hours", "Billable"}

// TimeReport writes the report rows to path as an XLSX workbook with a
// header row, one row per entry, and a totals row.
func TimeReport(path string, rows []domain.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	headerEnd, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", headerEnd, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	totalMinutes := 0
	for i, row := range rows {
		r := i + 2
		values := []any{
			row.Date.Format("2006-01-02"),
			row.UserName,
			row.JobName,
			row.TaskName,
			hours(row.Minutes),
			row.Billable,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
		}
		totalMinutes += row.Minutes
	}

	totalRow := len(rows) + 2
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	if err := f.SetCellValue(sheetName, labelCell, "Total"); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellValue(sheetName, valueCell, hours(totalMinutes)); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellStyle(sheetName, labelCell, valueCell, bold); err != nil {
		return fmt.Errorf("style total: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// DefaultFileName builds a report file name for a date range.
func DefaultFileName(from, to time.Time) string {
	return fmt.Sprintf("timesheets_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
}

func hours(minutes int) float64 {
	return float64(minutes) / 60.0
}
