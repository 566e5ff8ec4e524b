// Package workbook serves sheet ranges from a local workbook file, so the
// pipeline can run against offline exports of the ledgers with no Google
// credentials. Legacy .xls exports and .xlsx files are both accepted.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/termopark/finboard/pkg/layout"
	"github.com/termopark/finboard/pkg/models"
)

// ErrUnknownRange marks a range that names a sheet the workbook lacks.
var ErrUnknownRange = errors.New("unknown sheet in range")

// Source is a read-range source backed by one workbook file. All sheets are
// loaded up front; range reads are in-memory slices after that.
type Source struct {
	path     string
	sheets   map[string][][]models.Cell
	first    string
	modified time.Time
}

// Open loads a workbook. The file's mtime doubles as the source's
// last-modified stamp.
func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat workbook: %w", err)
	}

	var sheets map[string][][]models.Cell
	var first string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xls":
		sheets, first, err = readXLS(path)
	case ".xlsx":
		sheets, first, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported workbook format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	return &Source{path: path, sheets: sheets, first: first, modified: info.ModTime()}, nil
}

func readXLS(path string) (map[string][][]models.Cell, string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, "", fmt.Errorf("failed to open xls workbook: %w", err)
	}

	sheets := make(map[string][][]models.Cell)
	var first string
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var grid [][]models.Cell
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			cells := make([]models.Cell, row.LastCol()+1)
			for c := 0; c <= row.LastCol(); c++ {
				cells[c] = models.NewCell(row.Col(c))
			}
			grid = append(grid, cells)
		}
		sheets[ws.Name] = grid
		if first == "" {
			first = ws.Name
		}
	}
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("no sheets found in %s", path)
	}
	return sheets, first, nil
}

func readXLSX(path string) (map[string][][]models.Cell, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open xlsx workbook: %w", err)
	}
	defer f.Close()

	sheets := make(map[string][][]models.Cell)
	var first string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		grid := make([][]models.Cell, len(rows))
		for i, row := range rows {
			cells := make([]models.Cell, len(row))
			for j, v := range row {
				cells[j] = models.NewCell(v)
			}
			grid[i] = cells
		}
		sheets[name] = grid
		if first == "" {
			first = name
		}
	}
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("no sheets found in %s", path)
	}
	return sheets, first, nil
}

// ReadRange serves an A1-notation column range ("Sheet!B:G") from the loaded
// workbook. A range without a sheet prefix reads the first sheet.
func (s *Source) ReadRange(_ context.Context, rng string) ([][]models.Cell, error) {
	sheetName, colRange := splitRange(rng)
	if sheetName == "" {
		sheetName = s.first
	}
	grid, ok := s.sheets[sheetName]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownRange, sheetName, s.path)
	}

	start, end, err := layout.ParseColumnRange(colRange)
	if err != nil {
		return nil, err
	}

	out := make([][]models.Cell, len(grid))
	for i, row := range grid {
		if start >= len(row) {
			out[i] = nil
			continue
		}
		hi := end + 1
		if hi > len(row) {
			hi = len(row)
		}
		out[i] = row[start:hi]
	}
	return out, nil
}

// ModifiedTime reports the workbook file's mtime.
func (s *Source) ModifiedTime(_ context.Context) (string, error) {
	return s.modified.UTC().Format(time.RFC3339), nil
}

func splitRange(rng string) (sheet, cols string) {
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		return rng[:i], rng[i+1:]
	}
	return "", rng
}
