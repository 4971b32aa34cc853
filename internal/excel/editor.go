package excel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

type Editor struct {
	file       *excelize.File
	filepath   string
	sheets     int
	floatStyle int

	// FixedDecimals shows decimal values with two places instead of General
	FixedDecimals bool
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
		sheets:   len(file.GetSheetList()),
	}, nil
}

// CreateNewFile creates a new Excel file in memory that Save writes to filepath
func CreateNewFile(filepath string) *Editor {
	return &Editor{
		file:     excelize.NewFile(),
		filepath: filepath,
	}
}

// AddSheet creates a new sheet. The first sheet added takes the place of the
// default sheet of a new workbook.
func (e *Editor) AddSheet(sheetName string) error {
	if e.sheets > 0 {
		for _, existing := range e.file.GetSheetList() {
			if strings.EqualFold(existing, sheetName) {
				return fmt.Errorf("sheet %q already exists", sheetName)
			}
		}
		if _, err := e.file.NewSheet(sheetName); err != nil {
			return fmt.Errorf("failed to create sheet %q: %v", sheetName, err)
		}
		e.sheets++
		return nil
	}

	defaultSheet := e.file.GetSheetName(0)
	if err := e.file.SetSheetName(defaultSheet, sheetName); err != nil {
		return fmt.Errorf("failed to create sheet %q: %v", sheetName, err)
	}
	e.sheets++
	return nil
}

// RemoveSheet drops a sheet added by AddSheet. Removing the only sheet puts
// an empty default sheet back so the next AddSheet starts over.
func (e *Editor) RemoveSheet(sheetName string) error {
	placeholder := ""
	if e.sheets == 1 {
		placeholder = "~" + defaultSheetName
		if _, err := e.file.NewSheet(placeholder); err != nil {
			return fmt.Errorf("failed to restore default sheet: %v", err)
		}
	}

	if err := e.file.DeleteSheet(sheetName); err != nil {
		return fmt.Errorf("failed to remove sheet %q: %v", sheetName, err)
	}
	if idx, _ := e.file.GetSheetIndex(sheetName); idx != -1 {
		return fmt.Errorf("sheet %q was not removed", sheetName)
	}

	if placeholder != "" {
		if err := e.file.SetSheetName(placeholder, defaultSheetName); err != nil {
			return fmt.Errorf("failed to restore default sheet: %v", err)
		}
	}
	e.sheets--
	return nil
}

// SheetCount returns the number of sheets added or loaded
func (e *Editor) SheetCount() int {
	return e.sheets
}

// WriteTable writes header into row 1 and rows below it
func (e *Editor) WriteTable(sheet string, header []string, rows [][]string) error {
	headerRow := make([]interface{}, len(header))
	for i, name := range header {
		if err := checkCellLength(name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		headerRow[i] = name
	}
	if err := e.file.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := e.SetCellValueSmart(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// GetSheetNames returns all sheet names in the workbook
func (e *Editor) GetSheetNames() []string {
	return e.file.GetSheetList()
}

// GetAllRows returns all rows from a sheet
func (e *Editor) GetAllRows(sheet string) ([][]string, error) {
	return e.file.GetRows(sheet)
}

// Save saves the Excel file to the original filepath
func (e *Editor) Save() error {
	if e.filepath == "" {
		return fmt.Errorf("no filepath specified")
	}
	return e.file.SaveAs(e.filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

// parseNumericValue attempts to parse a string as a number and returns the appropriate type
// Returns the original string if it's not a valid number, and a flag indicating if it's a float
func parseNumericValue(value string) (interface{}, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value, false
	}

	// Leading zeros and signs are kept as text so identifiers survive
	intVal, err := strconv.ParseInt(trimmed, 10, 64)
	if err == nil {
		if strconv.FormatInt(intVal, 10) == trimmed {
			return intVal, false
		}
		return value, false
	}
	if errors.Is(err, strconv.ErrRange) {
		return value, false
	}

	if floatVal, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsInf(floatVal, 0) || math.IsNaN(floatVal) {
			return value, false
		}
		return floatVal, true
	}

	return value, false
}

// ErrCellTooLong is returned for values excelize would truncate
var ErrCellTooLong = errors.New("cell text exceeds the Excel limit")

func checkCellLength(value string) error {
	if n := utf8.RuneCountInString(value); n > excelize.TotalCellChars {
		return fmt.Errorf("%w: %d characters, limit %d", ErrCellTooLong, n, excelize.TotalCellChars)
	}
	return nil
}

// SetCellValueSmart sets a cell value, automatically detecting if it's a number
// Decimal values keep the General format unless FixedDecimals is set
func (e *Editor) SetCellValueSmart(sheet, cell string, value string) error {
	if err := checkCellLength(value); err != nil {
		return err
	}

	numericValue, isFloat := parseNumericValue(value)

	err := e.file.SetCellValue(sheet, cell, numericValue)
	if err != nil {
		return err
	}

	if isFloat && e.FixedDecimals {
		err = e.applyFloatFormatting(sheet, cell)
		if err != nil {
			return fmt.Errorf("failed to apply float formatting to cell %s: %v", cell, err)
		}
	}

	return nil
}

// applyFloatFormatting applies number formatting with 2 decimal places to a cell
func (e *Editor) applyFloatFormatting(sheet, cell string) error {
	if e.floatStyle == 0 {
		style, err := e.file.NewStyle(&excelize.Style{
			NumFmt: 2, // 0.00
		})
		if err != nil {
			return fmt.Errorf("failed to create float style: %v", err)
		}
		e.floatStyle = style
	}

	err := e.file.SetCellStyle(sheet, cell, cell, e.floatStyle)
	if err != nil {
		return fmt.Errorf("failed to apply float style: %v", err)
	}

	return nil
}
