package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Cell is one spreadsheet cell as delivered by a source. The underlying value
// keeps whatever the source produced: string, float64, bool, nil for an empty
// cell, or a pre-built *RevenueBreakdown on synthetic rows. Consumers go
// through the typed coercions below instead of asserting on the raw value.
type Cell struct {
	value any
}

// NewCell wraps a raw source value.
func NewCell(v any) Cell {
	return Cell{value: v}
}

// CellRow builds one grid row from raw values.
func CellRow(values ...any) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = NewCell(v)
	}
	return row
}

// GridFromValues converts an API-shaped value matrix into a cell grid.
func GridFromValues(values [][]any) [][]Cell {
	grid := make([][]Cell, len(values))
	for i, row := range values {
		grid[i] = CellRow(row...)
	}
	return grid
}

// Value returns the raw underlying value.
func (c Cell) Value() any {
	return c.value
}

// IsEmpty reports whether the cell holds nothing meaningful.
func (c Cell) IsEmpty() bool {
	if c.value == nil {
		return true
	}
	if s, ok := c.value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Label returns the trimmed text form of the cell.
func (c Cell) Label() string {
	switch v := c.value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Amount coerces the cell to a monetary amount. Strings may carry grouping
// spaces and a comma decimal separator, the way the ledgers are hand-typed.
// The second return is false when the cell is non-empty but not numeric.
func (c Cell) Amount() (float64, bool) {
	switch v := c.value.(type) {
	case nil:
		return 0, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, v)
		if s == "" {
			return 0, true
		}
		s = strings.ReplaceAll(s, ",", ".")
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
