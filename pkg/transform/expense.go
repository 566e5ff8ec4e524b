package transform

import (
	"github.com/termopark/finboard/pkg/layout"
	"github.com/termopark/finboard/pkg/models"
)

// CategoryUnspecified is the sentinel for expense rows with a blank category.
const CategoryUnspecified = "Не указано"

// ParseExpenseSheet walks every data row of one expense ledger and reads each
// unit's (date, amount, category) triple through the sheet's column map.
// Expense dates are always day-first, never month-first, so this path uses
// the strict day-first normalizer. A bad triple skips only that (row, unit)
// pair; other units on the same row are still processed.
func (p *Parser) ParseExpenseSheet(grid [][]models.Cell, sheet *layout.ExpenseSheet, method models.PaymentMethod) []models.ExpenseRecord {
	var records []models.ExpenseRecord
	var invalidDates, skippedAmounts int

	units := sheet.SortedUnits()
	for rowIndex := 1; rowIndex < len(grid); rowIndex++ {
		row := grid[rowIndex]
		for _, unit := range units {
			cols := sheet.Units[unit]
			date := cellAt(row, cols.Date)
			amount := cellAt(row, cols.Amount)
			category := cellAt(row, cols.Category)

			// No transaction recorded for this unit on this row.
			if date.IsEmpty() && amount.IsEmpty() && category.IsEmpty() {
				continue
			}

			raw, ok := date.Value().(string)
			if !ok {
				invalidDates++
				continue
			}
			normalized, err := NormalizeDayFirst(raw)
			if err != nil {
				p.logger.Debug("dropping expense pair", "unit", unit, "row", rowIndex, "error", err)
				invalidDates++
				continue
			}

			value, numeric := amount.Amount()
			if !numeric || value <= 0 {
				skippedAmounts++
				continue
			}

			label := category.Label()
			if label == "" {
				label = CategoryUnspecified
			}

			records = append(records, models.ExpenseRecord{
				Date:          normalized,
				Unit:          unit,
				Amount:        value,
				Category:      label,
				PaymentMethod: method,
				OriginalDate:  raw,
				RowIndex:      rowIndex,
			})
		}
	}

	p.logger.Info("expense sheet parsed",
		"method", method,
		"records", len(records),
		"invalid_dates", invalidDates,
		"skipped_amounts", skippedAmounts,
	)
	return records
}
