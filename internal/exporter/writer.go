package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// utf8BOM helps Excel recognize UTF-8 CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV streams a table as UTF-8 CSV with a BOM prefix.
func WriteCSV(w io.Writer, table Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range table.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteWorkbook streams a table as a single-sheet xlsx workbook.
func WriteWorkbook(w io.Writer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Name
	if sheet == "" {
		sheet = "Export"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	writeRow := func(rowIdx int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := writeRow(1, table.Headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range table.Records {
		if err := writeRow(i+2, record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
