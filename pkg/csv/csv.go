package csv

import (
	"bytes"
	"fmt"

	"github.com/termopark/finboard/pkg/models"
)

// FilterFunc reports whether a row belongs in the export.
type FilterFunc[T any] func(T) bool

// Create renders aggregated daily rows as the dashboard's CSV export.
func Create(rows []models.AggregatedDailyUnit, filter FilterFunc[models.AggregatedDailyUnit]) []byte {
	var buf bytes.Buffer
	buf.WriteString("Date,Unit,RevenueCash,RevenueBank,RevenueAcquiring,RevenueTotal,ExpenseTotal,Profit\n")
	for _, r := range rows {
		if filter == nil || filter(r) {
			buf.WriteString(fmt.Sprintf("%s,%s,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
				r.Date,
				r.Unit,
				r.Revenue.Cash,
				r.Revenue.Bank,
				r.Revenue.Acquiring,
				r.Revenue.Total,
				r.Expense.Total,
				r.Profit))
		}
	}
	return buf.Bytes()
}
