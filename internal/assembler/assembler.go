// Package assembler merges a timestamped batch of CSV reports into one workbook.
package assembler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"reportbook/internal/csvtable"
	"reportbook/internal/excel"
	"reportbook/internal/logger"
	"reportbook/internal/report"
)

// ErrNotDirectory is returned when the reports directory is missing or is a file.
var ErrNotDirectory = errors.New("reports directory is not a directory")

// SheetError records a report file that was present but could not become a sheet.
type SheetError struct {
	File  string
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("could not process %s into sheet %q: %v", e.File, e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// SheetReport describes one sheet written to the workbook.
type SheetReport struct {
	Sheet   string
	File    string
	Rows    int
	Columns int
}

// Result is the outcome of one Assemble call. Success is true only when at
// least one sheet was written and the workbook was saved.
type Result struct {
	Success       bool
	SheetsCreated int
	Path          string
	Sheets        []SheetReport
	Missing       []string
	Failed        []*SheetError
	Err           error
}

// Assembler builds the workbook for a report set.
type Assembler struct {
	Set           report.Set
	OutputPattern string
	Format        excel.FormatOptions
}

// New returns an Assembler for the default seven-report set.
func New() *Assembler {
	return &Assembler{
		Set:           report.DefaultSet(),
		OutputPattern: report.DefaultOutputPattern,
		Format:        excel.DefaultFormatOptions(),
	}
}

// Assemble reads every report of the set from reportsDir and writes each one
// found as a sheet, in set order. Missing and unreadable reports are logged
// and skipped. Failures are reported through the Result, never returned.
func (a *Assembler) Assemble(reportsDir, timestamp string) *Result {
	result := &Result{
		Path: filepath.Join(reportsDir, report.OutputName(a.OutputPattern, timestamp)),
	}

	logger.Info("Starting workbook assembly",
		"reports_dir", reportsDir,
		"timestamp", timestamp,
		"output", result.Path)

	editor, err := openWorkbook(reportsDir, result.Path)
	if err != nil {
		logger.Error("Excel workbook creation failed", "error", err)
		result.Err = err
		return result
	}
	defer editor.Close()
	editor.FixedDecimals = a.Format.FixedDecimals

	for _, source := range a.Set.Resolve(timestamp) {
		csvPath := filepath.Join(reportsDir, source.File)

		if _, err := os.Stat(csvPath); err != nil {
			logger.Warn("File not found", "file", source.File)
			result.Missing = append(result.Missing, source.File)
			continue
		}

		logger.Debug("Reading report", "path", csvPath, "sheet", source.Sheet)
		sheet, err := a.addSheet(editor, csvPath, source)
		if err != nil {
			sheetErr := &SheetError{File: source.File, Sheet: source.Sheet, Err: err}
			logger.Warn("Could not process report", "file", source.File, "error", err)
			result.Failed = append(result.Failed, sheetErr)
			continue
		}

		result.Sheets = append(result.Sheets, sheet)
		result.SheetsCreated++
		logger.Info("Sheet created", "sheet", sheet.Sheet, "rows", sheet.Rows)
	}

	if result.SheetsCreated == 0 {
		if len(result.Missing) == len(a.Set) {
			result.Err = fmt.Errorf("no report files matched timestamp %q in %s", timestamp, reportsDir)
		} else {
			result.Err = fmt.Errorf("no sheets were created: %d report files could not be processed", len(result.Failed))
		}
		logger.Error("No sheets were created", "error", result.Err)
		return result
	}

	if err := editor.Save(); err != nil {
		result.Err = fmt.Errorf("failed to save workbook: %w", err)
		logger.Error("Excel workbook creation failed", "error", result.Err)
		return result
	}

	result.Success = true
	logger.Info("Excel workbook created successfully",
		"file", filepath.Base(result.Path),
		"sheets", result.SheetsCreated)
	return result
}

func openWorkbook(reportsDir, path string) (*excel.Editor, error) {
	info, err := os.Stat(reportsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, reportsDir)
	}
	return excel.CreateNewFile(path), nil
}

func (a *Assembler) addSheet(editor *excel.Editor, csvPath string, source report.Source) (SheetReport, error) {
	table, err := csvtable.Load(csvPath)
	if err != nil {
		return SheetReport{}, err
	}

	if err := editor.AddSheet(source.Sheet); err != nil {
		return SheetReport{}, err
	}
	err = editor.WriteTable(source.Sheet, table.Header, table.Rows)
	if err == nil {
		err = editor.FormatSheet(source.Sheet, table.Header, table.Rows, a.Format)
	}
	if err != nil {
		if removeErr := editor.RemoveSheet(source.Sheet); removeErr != nil {
			logger.Warn("Could not remove partial sheet", "sheet", source.Sheet, "error", removeErr)
		}
		return SheetReport{}, err
	}

	return SheetReport{
		Sheet:   source.Sheet,
		File:    source.File,
		Rows:    table.Len(),
		Columns: table.Columns(),
	}, nil
}
