package transform

import (
	"testing"

	"github.com/termopark/finboard/pkg/layout"
	"github.com/termopark/finboard/pkg/models"
)

func TestParseBreakfastSheet(t *testing.T) {
	p := newTestParser(ModeStrict)
	cols := layout.BreakfastColumns{Date: 0, Count: 1, Amount: 2}
	grid := [][]models.Cell{
		models.CellRow("Дата", "Кол-во", "Сумма"),
		models.CellRow("02.03.2025", 4.0, "1 400"),
		models.CellRow("", "", ""),
		models.CellRow("03.03.2025", 0.0, "500"),
		models.CellRow("bad date", 2.0, "700"),
		models.CellRow("04.03.2025", 2.0, 700.0),
	}

	entries := p.ParseBreakfastSheet(grid, cols)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Date != "2025-03-02" || entries[0].Count != 4 || entries[0].Amount != 1400 {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Date != "2025-03-04" || entries[1].Count != 2 {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestSumBreakfast(t *testing.T) {
	entries := []models.BreakfastEntry{
		{Date: "2025-03-01", Count: 2, Amount: 700},
		{Date: "2025-03-02", Count: 4, Amount: 1400},
		{Date: "2025-03-10", Count: 1, Amount: 350},
	}

	all := SumBreakfast(entries, "", "")
	if all.Count != 7 || all.Amount != 2450 {
		t.Errorf("open range = %+v, want 7/2450", all)
	}

	ranged := SumBreakfast(entries, "2025-03-02", "2025-03-05")
	if ranged.Count != 4 || ranged.Amount != 1400 {
		t.Errorf("ranged = %+v, want 4/1400", ranged)
	}

	from := SumBreakfast(entries, "2025-03-02", "")
	if from.Count != 5 || from.Amount != 1750 {
		t.Errorf("from-only = %+v, want 5/1750", from)
	}
}
