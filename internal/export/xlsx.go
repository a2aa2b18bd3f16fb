package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet name used when none is configured.
const DefaultSheet = "Orders"

var headers = []string{"Invoice", "Name", "Address", "Phone", "Amount", "Note", "Delivery Type"}

// Writer serializes export rows into an XLSX workbook.
type Writer struct {
	sheet  string
	logger *slog.Logger
}

func NewWriter(sheet string, logger *slog.Logger) *Writer {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{sheet: sheet, logger: logger}
}

// WriteXLSX returns an XLSX workbook (as bytes) containing the header
// row followed by one row per export row, in invoice order.
func (w *Writer) WriteXLSX(rows []Row) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(w.sheet); index == -1 {
		if _, err := f.NewSheet(w.sheet); err != nil {
			return nil, err
		}
		defaultSheet := f.GetSheetName(0)
		if defaultSheet != w.sheet {
			_ = f.DeleteSheet(defaultSheet)
		}
	}
	activeIndex, _ := f.GetSheetIndex(w.sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(w.sheet, cell, h)
	}

	for n, row := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, n+2)
			_ = f.SetCellValue(w.sheet, cell, v)
		}
		write(1, row.Invoice)
		write(2, row.Record.Name)
		write(3, row.Record.Address)
		write(4, row.Record.Phone)
		write(5, row.Record.Amount)
		write(6, row.Record.Note)
		write(7, row.Record.DeliveryType)
	}

	_ = f.SetColWidth(w.sheet, "A", "A", 10) // invoice
	_ = f.SetColWidth(w.sheet, "B", "B", 24) // name
	_ = f.SetColWidth(w.sheet, "C", "C", 40) // address
	_ = f.SetColWidth(w.sheet, "D", "D", 16) // phone
	_ = f.SetColWidth(w.sheet, "E", "E", 12) // amount
	_ = f.SetColWidth(w.sheet, "F", "F", 40) // note

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.xlsx.ok",
		"sheet", w.sheet,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// Filename produces a timestamped workbook name, e.g.
// "29-Aug-2026(02:15PM).xlsx".
func Filename(now time.Time) string {
	return now.Format("02-Jan-2006(03:04PM)") + ".xlsx"
}
