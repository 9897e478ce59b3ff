// Package export renders query results as downloadable spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"

	"github.com/xuri/excelize/v2"
)

const (
	WaitingListSheet       = "Waiting List"
	XLSXContentType        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	registeredDateLayout   = "2006-01-02"
	waitingListColumnWidth = 18
)

var waitingListHeader = []interface{}{
	"ID", "Order Number", "Registered Date", "Status", "Poly", "Patient", "Email", "Schedule ID",
}

// WriteWaitingList writes rows as a single sheet workbook to w.
func WriteWaitingList(w io.Writer, rows []dto.WaitingListResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WaitingListSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(WaitingListSheet, "A1", &waitingListHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastColumn, err := excelize.ColumnNumberToName(len(waitingListHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(WaitingListSheet, "A1", lastColumn+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(WaitingListSheet, "A", lastColumn, waitingListColumnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	for i, row := range rows {
		registered := ""
		if row.RegisteredDate != nil {
			registered = row.RegisteredDate.Format(registeredDateLayout)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.ID, row.OrderNumber, registered, row.Status, row.PolyName, row.UserName, row.Email, row.ScheduleID,
		}
		if err := f.SetSheetRow(WaitingListSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
