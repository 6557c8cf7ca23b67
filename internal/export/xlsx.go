// Package export writes inspection history sheets and inspection reports.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/log"
)

// HistorySheet is the worksheet name of a history export.
const HistorySheet = "History"

var historyHeader = []string{
	"ID", "Create Date", "Name", "Standard", "Note", "Price", "Sampling Point", "Sampling Date",
}

var historyColWidths = []float64{38, 20, 24, 28, 30, 12, 28, 20}

// WriteHistoryXLSX writes one row per record under a bold header row.
func WriteHistoryXLSX(w io.Writer, records []inspection.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2EFDA"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("price style: %w", err)
	}

	for i, h := range historyHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(HistorySheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(historyHeader), 1)
	if err := f.SetCellStyle(HistorySheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, r := range records {
		row := i + 2
		sampling := "-"
		if r.SamplingDateTime != nil {
			sampling = inspection.FormatTime(*r.SamplingDateTime)
		}
		values := []any{
			r.ID,
			inspection.FormatTime(r.CreatedAt),
			r.Name,
			r.StandardLabel(),
			r.NoteLabel(),
			r.Price,
			r.SamplingLabel(),
			sampling,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(HistorySheet, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		priceCell, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(HistorySheet, priceCell, priceCell, priceStyle); err != nil {
			return err
		}
	}

	for i, width := range historyColWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(HistorySheet, col, col, width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	log.Debug(log.CatExport, "history sheet written", "rows", len(records))
	return nil
}
