package transform

import (
	"github.com/termopark/finboard/pkg/layout"
	"github.com/termopark/finboard/pkg/models"
)

// BuildRevenueGrid slices the per-unit revenue blocks into one synthetic
// header-led grid in the shape ParseRevenueRows consumes: date, unit label,
// cash, bank, acquiring, and a pre-built breakdown cell.
//
// Rows whose date cell does not normalize are dropped here, which also skips
// the blocks' own header rows. Money-cell text is handled per the configured
// validation mode: strict drops the whole row when any mapped money cell is
// non-empty but non-numeric, lenient reads such cells as zero.
func (p *Parser) BuildRevenueGrid(blocks map[models.BusinessUnit][][]models.Cell, lay *layout.RevenueLayout) [][]models.Cell {
	grid := [][]models.Cell{models.CellRow("date", "unit", "cash", "bank", "acquiring", "breakdown")}

	for _, block := range lay.Blocks {
		rows := blocks[block.Unit]
		var dropped int
		for _, row := range rows {
			date := colCell(row, block.Columns.Date)
			if _, err := NormalizeDate(date.Value()); err != nil {
				continue
			}
			if p.mode == ModeStrict && hasMalformedMoney(row, block.Columns) {
				dropped++
				continue
			}

			legal := amountOrZero(colCell(row, block.Columns.BankLegal))
			individual := amountOrZero(colCell(row, block.Columns.BankIndividual))
			online := amountOrZero(colCell(row, block.Columns.Online))
			terminal := amountOrZero(colCell(row, block.Columns.Terminal))
			cash := amountOrZero(colCell(row, block.Columns.Cash))

			breakdown := &models.RevenueBreakdown{
				BankLegal:         legal,
				BankIndividual:    individual,
				Online:            online,
				AcquiringTerminal: terminal,
				Cash:              cash,
			}
			// Online stays out of both bank and acquiring; the aggregator
			// adds it on top of the row total.
			grid = append(grid, models.CellRow(
				date.Value(), string(block.Unit), cash, legal+individual, terminal, breakdown,
			))
		}
		if dropped > 0 {
			p.logger.Info("revenue rows dropped by strict money validation", "unit", block.Unit, "count", dropped)
		}
	}
	return grid
}

func colCell(row []models.Cell, col *int) models.Cell {
	if col == nil {
		return models.NewCell(nil)
	}
	return cellAt(row, *col)
}

func hasMalformedMoney(row []models.Cell, cols layout.RevenueColumns) bool {
	for _, i := range cols.MoneyColumns() {
		c := cellAt(row, i)
		if c.IsEmpty() {
			continue
		}
		if _, ok := c.Amount(); !ok {
			return true
		}
	}
	return false
}
