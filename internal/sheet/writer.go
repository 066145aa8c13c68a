package sheet

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const rentalSheetName = "임대현황"

var rentalExportHeader = []any{
	"호실", "임대인", "연락처", "e-mail", "임대면적", "계약기간", "구분",
	"입금", "보증금", "월임대료", "관리비", "주차비", "비고",
}

// RentalExportFileName is the download name for an export made at t.
func RentalExportFileName(t time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", rentalSheetName, t.Format("20060102"))
}

// WriteRentals writes rows as a single-sheet workbook to w.
func WriteRentals(w io.Writer, rows []RentalRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rentalSheetName); err != nil {
		return fmt.Errorf("sheet: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(rentalSheetName, "A1", &rentalExportHeader); err != nil {
		return fmt.Errorf("sheet: write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.Ho,
			r.TenantName,
			r.Contact,
			r.Email,
			r.Area,
			fmt.Sprintf("%s ~ %s", r.ContractStartDate, r.ContractEndDate),
			r.Type,
			r.PaymentDate,
			r.Deposit.IntPart(),
			r.MonthlyRent.IntPart(),
			r.MaintenanceFee.IntPart(),
			r.ParkingFee.IntPart(),
			r.Remarks,
		}
		if err := f.SetSheetRow(rentalSheetName, cell, &values); err != nil {
			return fmt.Errorf("sheet: write row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("sheet: write workbook: %w", err)
	}
	return nil
}
