// Package export renders the records currently shown on the attendance
// screen as an XLSX workbook.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	recordsSheet = "Attendance"
	summarySheet = "Summary"
)

var ErrNoEmployeeSelected = errors.New("select an employee before exporting attendance")

// Filename names the workbook after the filter, e.g. "attendance_E001_2025-03-01_2025-03-31.xlsx".
func Filename(f attendance.Filter) string {
	name := "attendance_" + f.EmployeeID
	if f.StartDate != "" {
		name += "_" + f.StartDate
	}
	if f.EndDate != "" {
		name += "_" + f.EndDate
	}
	return name + ".xlsx"
}

// WriteAttendance writes one sheet of records and one of counts to w.
func WriteAttendance(w io.Writer, snap attendance.Snapshot) error {
	if snap.Filter.EmployeeID == "" {
		return ErrNoEmployeeSelected
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(recordsSheet, "A1", &[]interface{}{"Date", "Status"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(recordsSheet, "A1", "B1", header); err != nil {
		return err
	}
	for i, rec := range snap.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(recordsSheet, cell, &[]interface{}{rec.Date, string(rec.Status)}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(recordsSheet, "A", "B", 14); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	employeeLabel := snap.Filter.EmployeeID
	if e, ok := snap.SelectedEmployee(); ok {
		employeeLabel = e.Label()
	}
	counts := snap.Counts()
	rows := [][]interface{}{
		{"Employee", employeeLabel},
		{"From", snap.Filter.StartDate},
		{"To", snap.Filter.EndDate},
		{"Present", counts.Present},
		{"Absent", counts.Absent},
		{"Total", counts.Total},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A6", header); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 24); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
