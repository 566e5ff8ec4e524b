package transform

import (
	"github.com/termopark/finboard/pkg/layout"
	"github.com/termopark/finboard/pkg/models"
)

// ParseBreakfastSheet reads the breakfast ledger. Its dates are hand-entered
// day-first like the expense sheets, so the general normalizer would be
// ambiguous here; the day-first-only path is used instead. Rows with a count
// of zero or less carry no information and are skipped.
func (p *Parser) ParseBreakfastSheet(grid [][]models.Cell, cols layout.BreakfastColumns) []models.BreakfastEntry {
	var entries []models.BreakfastEntry
	var dropped int
	for i := 1; i < len(grid); i++ {
		row := grid[i]
		if rowIsBlank(row) {
			continue
		}
		date, err := NormalizeDayFirst(cellAt(row, cols.Date).Label())
		if err != nil {
			dropped++
			continue
		}
		count, ok := cellAt(row, cols.Count).Amount()
		if !ok || count <= 0 {
			dropped++
			continue
		}
		entries = append(entries, models.BreakfastEntry{
			Date:   date,
			Count:  int(count),
			Amount: amountOrZero(cellAt(row, cols.Amount)),
		})
	}
	if dropped > 0 {
		p.logger.Info("breakfast rows dropped", "count", dropped, "kept", len(entries))
	}
	return entries
}

// SumBreakfast totals breakfast entries inside [from, to]; empty bounds are
// open-ended. Dates are canonical strings, so plain comparison orders them.
func SumBreakfast(entries []models.BreakfastEntry, from, to string) models.BreakfastInfo {
	var info models.BreakfastInfo
	for _, e := range entries {
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date > to {
			continue
		}
		info.Count += e.Count
		info.Amount += e.Amount
	}
	return info
}
