// Package transform is the ingestion-normalization-aggregation core: it turns
// raw spreadsheet grids into validated revenue and expense records and folds
// them into one canonical per-(date, unit) daily ledger. Everything here is
// pure in-memory computation; malformed rows are dropped and counted, never
// surfaced as errors.
package transform

import (
	"github.com/charmbracelet/log"

	"github.com/termopark/finboard/pkg/models"
)

// ValidationMode decides what happens to a revenue row whose money cell holds
// non-numeric text. Strict drops the row in the block builder; lenient
// coerces the cell to zero and keeps the rest of the row.
type ValidationMode string

const (
	ModeStrict  ValidationMode = "strict"
	ModeLenient ValidationMode = "lenient"
)

// Parser runs the leaf stages of the pipeline. It holds no state across
// calls beyond the logger and the configured validation mode, so one instance
// may serve concurrent requests.
type Parser struct {
	logger *log.Logger
	mode   ValidationMode
}

// New creates a parser. An empty mode defaults to strict.
func New(logger *log.Logger, mode ValidationMode) *Parser {
	if mode == "" {
		mode = ModeStrict
	}
	return &Parser{logger: logger, mode: mode}
}

// Mode returns the configured validation mode.
func (p *Parser) Mode() ValidationMode {
	return p.mode
}

// cellAt is a bounds-safe row accessor: short rows read as empty cells, the
// way the Sheets API truncates trailing blanks.
func cellAt(row []models.Cell, i int) models.Cell {
	if i < 0 || i >= len(row) {
		return models.NewCell(nil)
	}
	return row[i]
}

func rowIsBlank(row []models.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// amountOrZero is the lenient money coercion: empty or unparseable cells
// count as zero.
func amountOrZero(c models.Cell) float64 {
	n, ok := c.Amount()
	if !ok {
		return 0
	}
	return n
}
