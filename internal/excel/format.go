package excel

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	DefaultWidthPadding = 2
	DefaultMaxWidth     = 50
)

// FormatOptions controls the cosmetic pass applied to each sheet
type FormatOptions struct {
	WidthPadding int
	MaxWidth     int
	BoldHeader   bool

	// FixedDecimals shows decimal values as 0.00 instead of General
	FixedDecimals bool
}

func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		WidthPadding: DefaultWidthPadding,
		MaxWidth:     DefaultMaxWidth,
		BoldHeader:   true,
	}
}

// ColumnWidths returns min(longest value including the header + padding, maxWidth)
// for every header column. Length is counted in characters.
func ColumnWidths(header []string, rows [][]string, padding, maxWidth int) []int {
	widths := make([]int, len(header))
	for c, name := range header {
		longest := utf8.RuneCountInString(name)
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			if n := utf8.RuneCountInString(row[c]); n > longest {
				longest = n
			}
		}

		width := longest + padding
		if maxWidth > 0 && width > maxWidth {
			width = maxWidth
		}
		widths[c] = width
	}
	return widths
}

// AutoFitColumns sets each column's width, starting at column A
func (e *Editor) AutoFitColumns(sheet string, widths []int) error {
	for i, width := range widths {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := e.file.SetColWidth(sheet, column, column, float64(width)); err != nil {
			return fmt.Errorf("failed to set width of column %s: %v", column, err)
		}
	}
	return nil
}

// BoldHeader makes the first columns cells of row 1 bold
func (e *Editor) BoldHeader(sheet string, columns int) error {
	if columns == 0 {
		return nil
	}

	style, err := e.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %v", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := e.file.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to apply header style: %v", err)
	}
	return nil
}

// FormatSheet fits column widths and, when the sheet has data rows, bolds the header
func (e *Editor) FormatSheet(sheet string, header []string, rows [][]string, opts FormatOptions) error {
	widths := ColumnWidths(header, rows, opts.WidthPadding, opts.MaxWidth)
	if err := e.AutoFitColumns(sheet, widths); err != nil {
		return err
	}

	if opts.BoldHeader && len(rows) > 0 {
		return e.BoldHeader(sheet, len(header))
	}
	return nil
}
