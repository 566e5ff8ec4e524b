package main

import (
	"github.com/termopark/finboard/pkg/csv"
	"github.com/termopark/finboard/pkg/models"
)

// filters narrows the CSV export beyond what the service query already did.
type filters struct {
	startDate string
	endDate   string
	unit      string
	minProfit float64
	maxProfit float64
}

func (f filters) toFilterFunc() csv.FilterFunc[models.AggregatedDailyUnit] {
	return func(row models.AggregatedDailyUnit) bool {
		if f.minProfit != 0 && row.Profit < f.minProfit {
			return false
		}
		if f.maxProfit != 0 && row.Profit > f.maxProfit {
			return false
		}
		return true
	}
}
