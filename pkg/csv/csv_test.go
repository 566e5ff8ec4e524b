package csv

import (
	"strings"
	"testing"

	"github.com/termopark/finboard/pkg/models"
)

func sampleRows() []models.AggregatedDailyUnit {
	return []models.AggregatedDailyUnit{
		{
			Date: "2025-03-02", Unit: models.UnitHotel,
			Revenue: models.RevenueTotals{Cash: 1000, Bank: 500, Acquiring: 200, Total: 1700},
			Expense: models.ExpenseTotals{Total: 800},
			Profit:  900,
		},
		{
			Date: "2025-03-02", Unit: models.UnitPool,
			Revenue: models.RevenueTotals{Cash: 100, Total: 100},
			Expense: models.ExpenseTotals{Total: 600},
			Profit:  -500,
		},
	}
}

func TestCreate(t *testing.T) {
	out := string(Create(sampleRows(), nil))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Unit,RevenueCash,RevenueBank,RevenueAcquiring,RevenueTotal,ExpenseTotal,Profit" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-03-02,hotel,1000.00,500.00,200.00,1700.00,800.00,900.00" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "2025-03-02,pool,100.00,0.00,0.00,100.00,600.00,-500.00" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestCreateFiltered(t *testing.T) {
	out := string(Create(sampleRows(), func(r models.AggregatedDailyUnit) bool {
		return r.Profit > 0
	}))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "hotel") {
		t.Errorf("kept row = %q", lines[1])
	}
}

func TestCreateEmpty(t *testing.T) {
	out := string(Create(nil, nil))
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}
