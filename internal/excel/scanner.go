package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetSummary describes one sheet of a saved workbook
type SheetSummary struct {
	Name   string
	Header []string
	// Rows counts data rows up to the last one holding a value. A row with
	// no values is never stored in the file, so trailing blank CSV records
	// are not counted here.
	Rows       int
	Widths     []float64
	HeaderBold bool
}

// ScanWorkbook opens a saved workbook and summarizes every sheet in tab order
func ScanWorkbook(filePath string) ([]SheetSummary, error) {
	editor, err := OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer editor.Close()

	var summaries []SheetSummary
	for _, sheetName := range editor.GetSheetNames() {
		summary, err := editor.scanSheet(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sheet %s: %v", sheetName, err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (e *Editor) scanSheet(sheetName string) (SheetSummary, error) {
	summary := SheetSummary{Name: sheetName}

	rows, err := e.GetAllRows(sheetName)
	if err != nil {
		return summary, fmt.Errorf("failed to get rows: %v", err)
	}
	if len(rows) == 0 {
		return summary, nil
	}

	summary.Header = rows[0]
	summary.Rows = len(rows) - 1

	for i := range summary.Header {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return summary, err
		}
		width, err := e.file.GetColWidth(sheetName, column)
		if err != nil {
			return summary, fmt.Errorf("failed to get width of column %s: %v", column, err)
		}
		summary.Widths = append(summary.Widths, width)
	}

	bold, err := e.isBold(sheetName, "A1")
	if err != nil {
		return summary, err
	}
	summary.HeaderBold = bold

	return summary, nil
}

func (e *Editor) isBold(sheet, cell string) (bool, error) {
	styleID, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return false, fmt.Errorf("failed to get style of %s: %v", cell, err)
	}
	style, err := e.file.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("failed to read style %d: %v", styleID, err)
	}
	return style.Font != nil && style.Font.Bold, nil
}
