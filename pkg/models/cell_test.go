package models

import "testing"

func TestCellAmount(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"nil", nil, 0, true},
		{"float", 1500.5, 1500.5, true},
		{"int", 42, 42, true},
		{"plain string", "1500", 1500, true},
		{"comma decimal", "1500,50", 1500.50, true},
		{"grouping spaces", "1 500,50", 1500.50, true},
		{"nbsp grouping", "1 500", 1500, true},
		{"blank string", "   ", 0, true},
		{"text", "abc", 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewCell(tt.value).Amount()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Amount() = (%v, %t), want (%v, %t)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCellLabel(t *testing.T) {
	if got := NewCell("  Продукты  ").Label(); got != "Продукты" {
		t.Errorf("Label() = %q", got)
	}
	if got := NewCell(nil).Label(); got != "" {
		t.Errorf("nil Label() = %q", got)
	}
	if got := NewCell(42.0).Label(); got != "42" {
		t.Errorf("numeric Label() = %q", got)
	}
}

func TestCellIsEmpty(t *testing.T) {
	if !NewCell(nil).IsEmpty() || !NewCell("  ").IsEmpty() {
		t.Error("nil and blank cells must read as empty")
	}
	if NewCell(0.0).IsEmpty() || NewCell("x").IsEmpty() {
		t.Error("zero and text cells are not empty")
	}
}

func TestGridFromValues(t *testing.T) {
	grid := GridFromValues([][]any{{"a", 1.0}, {nil}})
	if len(grid) != 2 || len(grid[0]) != 2 || len(grid[1]) != 1 {
		t.Fatalf("grid shape = %v", grid)
	}
	if grid[0][0].Label() != "a" {
		t.Errorf("cell = %q", grid[0][0].Label())
	}
	if !grid[1][0].IsEmpty() {
		t.Error("nil value should be empty")
	}
}
