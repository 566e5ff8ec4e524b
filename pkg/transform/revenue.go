package transform

import (
	"github.com/termopark/finboard/pkg/models"
)

// ParseRevenueRows consumes a header-led revenue grid and produces validated
// rows. The first row is always a header and is skipped; blank separator rows
// are common in the exports and are skipped too. A row whose date or unit
// fails to normalize is dropped silently; partial data is expected here.
func (p *Parser) ParseRevenueRows(grid [][]models.Cell) []models.RevenueRow {
	if len(grid) == 0 {
		return nil
	}

	var rows []models.RevenueRow
	var dropped int
	for _, r := range grid[1:] {
		if len(r) == 0 || rowIsBlank(r) {
			continue
		}

		date, err := NormalizeDate(cellAt(r, 0).Value())
		if err != nil {
			p.logger.Debug("dropping revenue row", "error", err)
			dropped++
			continue
		}
		unit, err := NormalizeUnit(cellAt(r, 1).Label())
		if err != nil {
			p.logger.Debug("dropping revenue row", "date", date, "error", err)
			dropped++
			continue
		}

		row := models.RevenueRow{
			Date:      date,
			Unit:      unit,
			Cash:      amountOrZero(cellAt(r, 2)),
			Bank:      amountOrZero(cellAt(r, 3)),
			Acquiring: amountOrZero(cellAt(r, 4)),
		}
		// The breakdown cell is copied as-is; its cash figure comes from the
		// same source cell as the cash column, so a zero there is a real zero.
		if br, ok := cellAt(r, 5).Value().(*models.RevenueBreakdown); ok && br != nil {
			b := *br
			row.Breakdown = &b
		}
		rows = append(rows, row)
	}

	if dropped > 0 {
		p.logger.Info("revenue rows dropped", "count", dropped, "kept", len(rows))
	}
	return rows
}
