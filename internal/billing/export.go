package billing

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bills"

var exportHeaders = []string{
	"Bill ID", "Created At", "Table", "Customer", "Items",
	"Total Without Tax", "GST %", "Tax", "Total Amount", "Generated By",
}

// ExportRow is one bill line in the history workbook.
type ExportRow struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	TableNumber     string
	CustomerName    string
	ItemCount       int
	TotalWithoutTax decimal.Decimal
	GSTPercentage   decimal.Decimal
	TotalAmount     decimal.Decimal
	GeneratedBy     string
}

// WriteWorkbook renders rows as an XLSX workbook with a trailing totals row.
// Timestamps are shown in loc.
func WriteWorkbook(w io.Writer, rows []ExportRow, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	sumWithoutTax := decimal.Zero
	sumTotal := decimal.Zero
	for i, row := range rows {
		r := i + 2
		tax := row.TotalAmount.Sub(row.TotalWithoutTax)
		values := []interface{}{
			row.ID.String(),
			row.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			row.TableNumber,
			row.CustomerName,
			row.ItemCount,
			row.TotalWithoutTax.InexactFloat64(),
			row.GSTPercentage.InexactFloat64(),
			tax.InexactFloat64(),
			row.TotalAmount.InexactFloat64(),
			row.GeneratedBy,
		}
		if err := setRow(f, r, values); err != nil {
			return err
		}
		sumWithoutTax = sumWithoutTax.Add(row.TotalWithoutTax)
		sumTotal = sumTotal.Add(row.TotalAmount)
	}

	totals := []interface{}{
		"TOTAL", "", "", "", len(rows),
		sumWithoutTax.InexactFloat64(),
		"",
		sumTotal.Sub(sumWithoutTax).InexactFloat64(),
		sumTotal.InexactFloat64(),
		"",
	}
	if err := setRow(f, len(rows)+2, totals); err != nil {
		return err
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "B", "J", 16); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return fmt.Errorf("write %s: %w", cell, err)
		}
	}
	return nil
}
