package transform

import (
	"sort"

	"github.com/termopark/finboard/pkg/models"
)

// AggregateByDateUnit folds normalized revenue rows and combined expense rows
// into exactly one output row per distinct (date, unit) key, with
// profit = revenue total - expense total (negative profit is kept, not
// clamped). The result is sorted by date ascending then unit lexicographic;
// table rendering and CSV export rely on that ordering being total.
func AggregateByDateUnit(revenues []models.RevenueRow, expenses []models.DetailedExpenseRow) []models.AggregatedDailyUnit {
	entries := make(map[string]*models.AggregatedDailyUnit)

	ensure := func(date string, unit models.BusinessUnit) *models.AggregatedDailyUnit {
		k := date + "__" + string(unit)
		if item, ok := entries[k]; ok {
			return item
		}
		item := &models.AggregatedDailyUnit{Date: date, Unit: unit}
		entries[k] = item
		return item
	}

	for _, r := range revenues {
		item := ensure(r.Date, r.Unit)
		item.Revenue.Cash += r.Cash
		item.Revenue.Bank += r.Bank
		item.Revenue.Acquiring += r.Acquiring

		var extraOnline float64
		if r.Breakdown != nil {
			extraOnline = r.Breakdown.Online
		}
		item.Revenue.Total += r.Cash + r.Bank + r.Acquiring + extraOnline

		if r.Breakdown != nil {
			if item.Revenue.Breakdown == nil {
				item.Revenue.Breakdown = &models.RevenueBreakdown{}
			}
			item.Revenue.Breakdown.BankLegal += r.Breakdown.BankLegal
			item.Revenue.Breakdown.BankIndividual += r.Breakdown.BankIndividual
			item.Revenue.Breakdown.Online += r.Breakdown.Online
			item.Revenue.Breakdown.AcquiringTerminal += r.Breakdown.AcquiringTerminal
			item.Revenue.Breakdown.Cash += r.Breakdown.Cash
		}
	}

	for _, e := range expenses {
		item := ensure(e.Date, e.Unit)
		item.Expense.Purchases += e.Purchases
		item.Expense.Salaries += e.Salaries
		item.Expense.Other += e.Other
		item.Expense.Total += e.Purchases + e.Salaries + e.Other
		if e.Details != nil {
			// Each (date, unit) has exactly one combined expense row by
			// construction, so last-write-wins is fine.
			item.ExpenseDetails = e.Details
		}
	}

	out := make([]models.AggregatedDailyUnit, 0, len(entries))
	for _, item := range entries {
		item.Profit = item.Revenue.Total - item.Expense.Total
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}
