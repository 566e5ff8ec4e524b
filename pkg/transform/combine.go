package transform

import (
	"sort"

	"github.com/termopark/finboard/pkg/models"
)

// CombineExpenses merges cash-ledger and account-ledger records into one
// detailed row per (date, unit): amounts summed per payment method, record
// counts, the de-duplicated category set, and the full transaction list so
// downstream consumers can recompute category breakdowns without re-parsing
// the sheets. The legacy purchases/salaries fields stay zero; the whole total
// lands in Other.
func CombineExpenses(cash, account []models.ExpenseRecord) []models.DetailedExpenseRow {
	all := make([]models.ExpenseRecord, 0, len(cash)+len(account))
	all = append(all, cash...)
	all = append(all, account...)

	type groupKey struct {
		date string
		unit models.BusinessUnit
	}
	groups := make(map[groupKey][]models.ExpenseRecord)
	var keys []groupKey
	for _, rec := range all {
		k := groupKey{date: rec.Date, unit: rec.Unit}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], rec)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].unit < keys[j].unit
	})

	rows := make([]models.DetailedExpenseRow, 0, len(keys))
	for _, k := range keys {
		recs := groups[k]
		details := &models.ExpenseDetails{
			CategoryDetails: make([]models.CategoryDetail, 0, len(recs)),
		}
		seenCategories := make(map[string]bool)
		for _, rec := range recs {
			switch rec.PaymentMethod {
			case models.PaymentCash:
				details.Cash += rec.Amount
				details.CashCount++
			case models.PaymentAccount:
				details.Account += rec.Amount
				details.AccountCount++
			}
			if !seenCategories[rec.Category] {
				seenCategories[rec.Category] = true
				details.Categories = append(details.Categories, rec.Category)
			}
			details.CategoryDetails = append(details.CategoryDetails, models.CategoryDetail{
				Category:      rec.Category,
				Amount:        rec.Amount,
				PaymentMethod: rec.PaymentMethod,
				RowIndex:      rec.RowIndex,
			})
		}
		details.Total = details.Cash + details.Account

		rows = append(rows, models.DetailedExpenseRow{
			Date:    k.date,
			Unit:    k.unit,
			Other:   details.Total,
			Details: details,
		})
	}
	return rows
}
