package transform

import (
	"testing"

	"github.com/termopark/finboard/pkg/models"
)

func TestParseRevenueRows(t *testing.T) {
	p := newTestParser(ModeStrict)
	grid := [][]models.Cell{
		models.CellRow("date", "unit", "cash", "bank", "acquiring", "breakdown"),
		models.CellRow("03.04.2025", "Отель и бани", 1000.0, 500.0, 200.0, nil),
		models.CellRow(),
		models.CellRow("04.04.2025", "ресторан", "1 500,50", 0.0, 0.0, nil),
	}

	rows := p.ParseRevenueRows(grid)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Date != "2025-03-04" {
		t.Errorf("date = %q, want 2025-03-04", first.Date)
	}
	if first.Unit != models.UnitHotel {
		t.Errorf("unit = %q, want hotel", first.Unit)
	}
	if first.Cash != 1000 || first.Bank != 500 || first.Acquiring != 200 {
		t.Errorf("amounts = %v/%v/%v, want 1000/500/200", first.Cash, first.Bank, first.Acquiring)
	}

	second := rows[1]
	if second.Unit != models.UnitRestaurant {
		t.Errorf("unit = %q, want restaurant", second.Unit)
	}
	if second.Cash != 1500.50 {
		t.Errorf("cash = %v, want 1500.50 (grouping space and comma decimal)", second.Cash)
	}
}

func TestParseRevenueRowsDropsInvalid(t *testing.T) {
	p := newTestParser(ModeStrict)
	grid := [][]models.Cell{
		models.CellRow("date", "unit", "cash", "bank", "acquiring", "breakdown"),
		models.CellRow("not a date", "отель", 100.0, 0.0, 0.0, nil),
		models.CellRow("03.04.2025", "казино", 100.0, 0.0, 0.0, nil),
		models.CellRow("03.04.2025", "бар", 100.0, 0.0, 0.0, nil),
	}
	rows := p.ParseRevenueRows(grid)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Unit != models.UnitBar {
		t.Errorf("kept unit = %q, want bar", rows[0].Unit)
	}
}

func TestParseRevenueRowsBreakdown(t *testing.T) {
	p := newTestParser(ModeStrict)
	br := &models.RevenueBreakdown{BankLegal: 500, Online: 300, AcquiringTerminal: 200, Cash: 1000}
	grid := [][]models.Cell{
		models.CellRow("date", "unit", "cash", "bank", "acquiring", "breakdown"),
		models.CellRow("2025-04-03", "hotel", 1000.0, 500.0, 200.0, br),
	}
	rows := p.ParseRevenueRows(grid)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0].Breakdown
	if got == nil {
		t.Fatal("breakdown missing")
	}
	if got == br {
		t.Error("breakdown must be copied, not aliased")
	}
	if got.Online != 300 {
		t.Errorf("online = %v, want 300", got.Online)
	}
	if got.Cash != 1000 {
		t.Errorf("breakdown cash = %v, want 1000", got.Cash)
	}
}

func TestParseRevenueRowsBreakdownKeepsZeroCash(t *testing.T) {
	p := newTestParser(ModeStrict)
	// A card-only day: the row's cash column is positive elsewhere, but the
	// breakdown explicitly recorded no cash.
	br := &models.RevenueBreakdown{AcquiringTerminal: 200, Cash: 0}
	grid := [][]models.Cell{
		models.CellRow("date", "unit", "cash", "bank", "acquiring", "breakdown"),
		models.CellRow("2025-04-03", "hotel", 1000.0, 0.0, 200.0, br),
	}
	rows := p.ParseRevenueRows(grid)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0].Breakdown.Cash; got != 0 {
		t.Errorf("breakdown cash = %v, want the recorded 0", got)
	}
}

func TestParseRevenueRowsEmptyGrid(t *testing.T) {
	p := newTestParser(ModeStrict)
	if rows := p.ParseRevenueRows(nil); rows != nil {
		t.Errorf("expected nil for empty grid, got %v", rows)
	}
	header := [][]models.Cell{models.CellRow("date", "unit", "cash", "bank", "acquiring", "breakdown")}
	if rows := p.ParseRevenueRows(header); len(rows) != 0 {
		t.Errorf("expected no rows for header-only grid, got %d", len(rows))
	}
}
