// Package excel produce el XLSX del libro de asientos de una empresa.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// Asegura que EntriesExporter implementa usecase.EntriesExporter.
var _ usecase.EntriesExporter = (*EntriesExporter)(nil)

// EntriesExporter exportador XLSX sobre excelize.
type EntriesExporter struct{}

// NewEntriesExporter construye el exportador.
func NewEntriesExporter() *EntriesExporter { return &EntriesExporter{} }

// Export genera un workbook con una hoja por el libro completo. Los montos se
// exportan en unidades monetarias (centavos / 100) para que la hoja sea
// directamente legible.
func (e *EntriesExporter) Export(companyName string, entries []*entity.EntrySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Entries"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Company",
		"Entry Type",
		"Document Year",
		"Document Number",
		"Document Date",
		"Counterparty",
		"Booking Text",
		"Amount Gross",
		"Amount Net",
		"Amount Tax",
		"Payment Received",
		"Expense Type",
		"Source File",
		"Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, s := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, companyName)
		write(2, string(s.EntryType))
		write(3, s.DocumentYear)
		write(4, s.DocumentNumber)
		write(5, s.DocumentDate)
		write(6, s.CounterpartyName)
		write(7, s.BookingText)
		write(8, cents(s.AmountGross))
		if s.AmountNet != nil {
			write(9, cents(*s.AmountNet))
		}
		if s.AmountTax != nil {
			write(10, cents(*s.AmountTax))
		}
		if s.PaymentReceivedDate != nil {
			write(11, *s.PaymentReceivedDate)
		}
		if s.ExpenseTypeText != nil {
			write(12, *s.ExpenseTypeText)
		}
		write(13, s.SourceOriginalFilename)
		write(14, s.CreatedAt.Format("2006-01-02 15:04:05"))
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cents(v int64) float64 { return float64(v) / 100 }
