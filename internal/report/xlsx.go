// Package report records one row per job outcome, incrementally persisted to
// an XLSX workbook and a SQLite database, and renders the end-of-run summary.
package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/sadewadee/job-applier/internal/domain"
)

const defaultFlushEvery = 10

var xlsxColumns = []string{
	"Timestamp", "Title", "Company", "Decision", "Reason", "Relevance", "Scored By", "URL",
}

// XLSXWriter appends outcomes to a spreadsheet, saving to disk every
// FlushEvery rows and on Close.
type XLSXWriter struct {
	mu         sync.Mutex
	file       *excelize.File
	path       string
	sheet      string
	nextRow    int
	appended   int
	flushEvery int
}

// NewXLSXWriter creates the workbook with a styled header row
func NewXLSXWriter(path string, flushEvery int) (*XLSXWriter, error) {
	if flushEvery < 1 {
		flushEvery = defaultFlushEvery
	}

	f := excelize.NewFile()

	const sheet = "Outcomes"

	f.SetSheetName("Sheet1", sheet)

	for i, col := range xlsxColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(xlsxColumns), 1)
		_ = f.SetCellStyle(sheet, "A1", lastCol, headerStyle)
	}

	w := &XLSXWriter{
		file:       f,
		path:       path,
		sheet:      sheet,
		nextRow:    2,
		flushEvery: flushEvery,
	}

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to create results file: %w", err)
	}

	return w, nil
}

// Append writes one outcome row
func (w *XLSXWriter) Append(_ context.Context, o domain.Outcome) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	values := []any{
		o.CreatedAt.Format("2006-01-02 15:04:05"),
		o.Title,
		o.Company,
		string(o.Decision),
		o.Reason,
		string(o.Relevance),
		o.ScoredBy,
		o.URL,
	}

	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, w.nextRow)
		if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write outcome row: %w", err)
		}
	}

	w.nextRow++
	w.appended++

	if w.appended%w.flushEvery == 0 {
		if err := w.file.SaveAs(w.path); err != nil {
			return fmt.Errorf("failed to flush results file: %w", err)
		}
	}

	return nil
}

// RecordCount returns the number of appended rows
func (w *XLSXWriter) RecordCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.appended
}

// Close saves any pending rows and releases the workbook
func (w *XLSXWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save results file: %w", err)
	}

	return w.file.Close()
}
