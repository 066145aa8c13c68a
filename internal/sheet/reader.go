package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook is returned for files without any worksheet.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// rentalHeaderRow is the 0-based row holding the rental sheet headers; the
// rows above it carry the report title.
const rentalHeaderRow = 2

// Warnings collects values that could not be coerced and fell back to their
// zero value. They are informational only.
type Warnings []string

func (w *Warnings) addf(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

// firstSheetRows returns all rows of the first worksheet.
func firstSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet: read rows: %w", err)
	}
	return rows, nil
}

// parseAmount reads a money cell such as "1,500,000" or " 300000 ".
// Blank cells are zero without a warning.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IPRow is one assignment row of the IP inventory sheet.
type IPRow struct {
	IPAddress  string
	Department string
	User       string
	Usage      string
}

// ReadIPInventory parses the IP inventory sheet. The header is the first row;
// rows without an address are dropped.
func ReadIPInventory(r io.Reader) ([]IPRow, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := IPAliases().resolve(rows[0])

	out := make([]IPRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		item := IPRow{
			IPAddress:  cols.get(row, "ip_address"),
			Department: cols.get(row, "department"),
			User:       cols.get(row, "user"),
			Usage:      cols.get(row, "usage"),
		}
		if item.IPAddress == "" {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// RentalRow is one contract row of the rental status sheet.
type RentalRow struct {
	Type              string
	Ho                string
	Area              string
	TenantName        string
	Contact           string
	Email             string
	RentalType        string
	Deposit           decimal.Decimal
	MonthlyRent       decimal.Decimal
	MaintenanceFee    decimal.Decimal
	ParkingFee        decimal.Decimal
	PaymentDate       string
	ContractStartDate string
	ContractEndDate   string
	Remarks           string
}

// ReadRentals parses the rental status sheet. Amounts that do not parse are
// recorded as zero and reported in the returned Warnings.
func ReadRentals(r io.Reader) ([]RentalRow, Warnings, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) <= rentalHeaderRow {
		return nil, nil, nil
	}
	cols := RentalAliases().resolve(rows[rentalHeaderRow])

	var warns Warnings
	amount := func(row []string, line int, field string) decimal.Decimal {
		raw := cols.get(row, field)
		d, ok := parseAmount(raw)
		if !ok {
			warns.addf("row %d: %s %q is not a number, using 0", line, field, raw)
		}
		return d
	}

	var out []RentalRow
	for i, row := range rows[rentalHeaderRow+1:] {
		line := rentalHeaderRow + i + 2 // 1-based sheet row
		if isBlank(row) {
			continue
		}
		start, end := SplitContractPeriod(cols.get(row, "contract_period"))
		out = append(out, RentalRow{
			Type:              cols.get(row, "type"),
			Ho:                cols.get(row, "ho"),
			Area:              cols.get(row, "area"),
			TenantName:        cols.get(row, "tenant_name"),
			Contact:           cols.get(row, "contact"),
			Email:             cols.get(row, "email"),
			RentalType:        cols.get(row, "rental_type"),
			Deposit:           amount(row, line, "deposit"),
			MonthlyRent:       amount(row, line, "monthly_rent"),
			MaintenanceFee:    amount(row, line, "maintenance_fee"),
			ParkingFee:        amount(row, line, "parking_fee"),
			PaymentDate:       cols.get(row, "payment_date"),
			ContractStartDate: start,
			ContractEndDate:   end,
			Remarks:           cols.get(row, "remarks"),
		})
	}
	return out, warns, nil
}

// SplitContractPeriod splits "2022.07.06 ~ 2024.07.05" into its two dates.
// Anything other than exactly two parts yields empty strings.
func SplitContractPeriod(s string) (start, end string) {
	if s == "" {
		return "", ""
	}
	parts := strings.Split(s, "~")
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
