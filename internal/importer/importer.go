// Package importer parses uploaded XLSX and CSV files into flashcards.
// Column A (or the first CSV field) is the card front, column B the
// back; a header row is detected and skipped.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/QyongGin/learnkit/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")

// Result holds the outcome of parsing one upload
type Result struct {
	Cards   []models.CardContent
	Skipped int      // rows without both a front and a back
	Errors  []string // per-row parse problems, row-numbered
}

// Parse dispatches on the uploaded file's extension
func Parse(filename string, r io.Reader) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParseXLSX(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// ParseXLSX reads cards from the first sheet of a workbook
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := &Result{}
	for i, row := range rows {
		addRow(result, row, i+1)
	}
	return result, nil
}

// ParseCSV reads cards from a two-column CSV stream
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &Result{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rowNum++
		addRow(result, row, rowNum)
	}
	return result, nil
}

func addRow(result *Result, row []string, rowNum int) {
	var front, back string
	if len(row) > 0 {
		front = strings.TrimSpace(row[0])
	}
	if len(row) > 1 {
		back = strings.TrimSpace(row[1])
	}

	if rowNum == 1 && isHeader(front, back) {
		return
	}
	if front == "" && back == "" {
		result.Skipped++
		return
	}
	if front == "" || back == "" {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: need both a front and a back", rowNum))
		return
	}

	result.Cards = append(result.Cards, models.CardContent{FrontText: front, BackText: back})
}

func isHeader(front, back string) bool {
	f := strings.ToLower(front)
	b := strings.ToLower(back)
	switch {
	case f == "front" || f == "fronttext" || f == "word" || f == "question":
		return true
	case b == "back" || b == "backtext" || b == "meaning" || b == "answer":
		return true
	}
	return false
}
