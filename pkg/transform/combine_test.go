package transform

import (
	"reflect"
	"testing"

	"github.com/termopark/finboard/pkg/models"
)

func TestCombineExpenses(t *testing.T) {
	cash := []models.ExpenseRecord{
		{Date: "2025-03-02", Unit: models.UnitHotel, Amount: 500, Category: "Продукты", PaymentMethod: models.PaymentCash, RowIndex: 4},
	}
	account := []models.ExpenseRecord{
		{Date: "2025-03-02", Unit: models.UnitHotel, Amount: 300, Category: "ФОТ", PaymentMethod: models.PaymentAccount, RowIndex: 7},
	}

	rows := CombineExpenses(cash, account)
	if len(rows) != 1 {
		t.Fatalf("expected 1 combined row, got %d", len(rows))
	}

	row := rows[0]
	if row.Date != "2025-03-02" || row.Unit != models.UnitHotel {
		t.Errorf("key = %s/%s", row.Date, row.Unit)
	}
	if row.Purchases != 0 || row.Salaries != 0 {
		t.Errorf("purchases/salaries = %v/%v, want 0/0", row.Purchases, row.Salaries)
	}
	if row.Other != 800 {
		t.Errorf("other = %v, want 800", row.Other)
	}

	d := row.Details
	if d == nil {
		t.Fatal("details missing")
	}
	if d.Cash != 500 || d.Account != 300 || d.Total != 800 {
		t.Errorf("cash/account/total = %v/%v/%v, want 500/300/800", d.Cash, d.Account, d.Total)
	}
	if d.CashCount != 1 || d.AccountCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", d.CashCount, d.AccountCount)
	}
	if want := []string{"Продукты", "ФОТ"}; !reflect.DeepEqual(d.Categories, want) {
		t.Errorf("categories = %v, want %v", d.Categories, want)
	}
	if len(d.CategoryDetails) != 2 {
		t.Fatalf("expected 2 category details, got %d", len(d.CategoryDetails))
	}
	if d.CategoryDetails[0].RowIndex != 4 || d.CategoryDetails[1].RowIndex != 7 {
		t.Errorf("detail row indices = %d/%d", d.CategoryDetails[0].RowIndex, d.CategoryDetails[1].RowIndex)
	}
}

func TestCombineExpensesDeduplicatesCategories(t *testing.T) {
	cash := []models.ExpenseRecord{
		{Date: "2025-03-02", Unit: models.UnitSpa, Amount: 100, Category: "Продукты", PaymentMethod: models.PaymentCash},
		{Date: "2025-03-02", Unit: models.UnitSpa, Amount: 200, Category: "Продукты", PaymentMethod: models.PaymentCash},
	}
	rows := CombineExpenses(cash, nil)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	d := rows[0].Details
	if want := []string{"Продукты"}; !reflect.DeepEqual(d.Categories, want) {
		t.Errorf("categories = %v, want %v", d.Categories, want)
	}
	if d.Cash != 300 || d.CashCount != 2 {
		t.Errorf("cash/count = %v/%d, want 300/2", d.Cash, d.CashCount)
	}
	if len(d.CategoryDetails) != 2 {
		t.Errorf("category details must keep every transaction, got %d", len(d.CategoryDetails))
	}
}

func TestCombineExpensesOrdering(t *testing.T) {
	cash := []models.ExpenseRecord{
		{Date: "2025-03-03", Unit: models.UnitSpa, Amount: 1, PaymentMethod: models.PaymentCash},
		{Date: "2025-03-02", Unit: models.UnitRestaurant, Amount: 1, PaymentMethod: models.PaymentCash},
		{Date: "2025-03-02", Unit: models.UnitHotel, Amount: 1, PaymentMethod: models.PaymentCash},
	}
	rows := CombineExpenses(cash, nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	got := []string{
		rows[0].Date + "/" + string(rows[0].Unit),
		rows[1].Date + "/" + string(rows[1].Unit),
		rows[2].Date + "/" + string(rows[2].Unit),
	}
	want := []string{"2025-03-02/hotel", "2025-03-02/restaurant", "2025-03-03/spa"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestCombineExpensesEmpty(t *testing.T) {
	if rows := CombineExpenses(nil, nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
