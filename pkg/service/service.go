// Package service runs the full reporting pipeline: fetch the raw grids from
// whichever sources are configured, run the transform core, filter to the
// requested slice, and attach source freshness stamps.
package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/termopark/finboard/pkg/layout"
	"github.com/termopark/finboard/pkg/models"
	"github.com/termopark/finboard/pkg/transform"
)

// Source is one spreadsheet-shaped collaborator: a grid per range plus a
// last-modified stamp. Google Sheets and local workbook files both satisfy it.
type Source interface {
	ReadRange(ctx context.Context, rng string) ([][]models.Cell, error)
	ModifiedTime(ctx context.Context) (string, error)
}

// Sources are the configured inputs. Any of them may be nil; the report is
// built from whatever is present.
type Sources struct {
	Revenue   Source
	Expense   Source
	Breakfast Source
}

// Query is one report request.
type Query struct {
	Unit             string
	From             string
	To               string
	IncludeBreakfast bool
}

// Report is the API payload: aggregated rows plus per-source freshness.
type Report struct {
	Data                []models.AggregatedDailyUnit `json:"data"`
	LastModified        string                       `json:"lastModified,omitempty"`
	RevenueLastModified string                       `json:"revenueLastModified,omitempty"`
	ExpenseLastModified string                       `json:"expenseLastModified,omitempty"`
	BreakfastInfo       *models.BreakfastInfo        `json:"breakfastInfo,omitempty"`
}

// Service wires the parser to its sources. One instance serves concurrent
// requests; every call allocates its own grids and maps.
type Service struct {
	logger  *log.Logger
	parser  *transform.Parser
	layout  *layout.Layout
	sources Sources
}

// New creates a reporting service.
func New(logger *log.Logger, lay *layout.Layout, sources Sources, mode transform.ValidationMode) *Service {
	return &Service{
		logger:  logger,
		parser:  transform.New(logger, mode),
		layout:  lay,
		sources: sources,
	}
}

// BuildReport fetches, parses, aggregates, and filters in one pass. A failing
// revenue source fails the report; a failing expense or breakfast source is
// logged and the report continues without that side, matching how the
// dashboard degrades rather than going dark.
func (s *Service) BuildReport(ctx context.Context, q Query) (*Report, error) {
	revenues, err := s.fetchRevenues(ctx)
	if err != nil {
		return nil, err
	}

	var expenses []models.DetailedExpenseRow
	if s.sources.Expense != nil {
		expenses, err = s.fetchExpenses(ctx)
		if err != nil {
			s.logger.Error("failed to read expense sheets", "error", err)
			expenses = nil
		}
	}

	data := transform.AggregateByDateUnit(revenues, expenses)
	data = filterRows(data, q)
	s.logger.Info("report built", "rows", len(data), "unit", q.Unit, "from", q.From, "to", q.To)

	report := &Report{Data: data}
	s.stampSources(ctx, report)

	if q.IncludeBreakfast && s.sources.Breakfast != nil {
		if info, err := s.fetchBreakfast(ctx, q); err != nil {
			s.logger.Warn("failed to read breakfast ledger", "error", err)
		} else {
			report.BreakfastInfo = info
		}
	}
	return report, nil
}

func (s *Service) fetchRevenues(ctx context.Context) ([]models.RevenueRow, error) {
	if s.sources.Revenue == nil {
		return nil, nil
	}
	blocks := make(map[models.BusinessUnit][][]models.Cell, len(s.layout.Revenue.Blocks))
	for _, block := range s.layout.Revenue.Blocks {
		rng := s.layout.Revenue.Sheet + "!" + block.Range
		grid, err := s.sources.Revenue.ReadRange(ctx, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to read revenue block %s: %w", block.Unit, err)
		}
		blocks[block.Unit] = grid
	}
	grid := s.parser.BuildRevenueGrid(blocks, &s.layout.Revenue)
	return s.parser.ParseRevenueRows(grid), nil
}

func (s *Service) fetchExpenses(ctx context.Context) ([]models.DetailedExpenseRow, error) {
	cashGrid, err := s.sources.Expense.ReadRange(ctx, s.layout.ExpenseCash.Sheet+"!"+s.layout.ExpenseCash.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to read cash ledger: %w", err)
	}
	accountGrid, err := s.sources.Expense.ReadRange(ctx, s.layout.ExpenseAccount.Sheet+"!"+s.layout.ExpenseAccount.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to read account ledger: %w", err)
	}

	cashRecords := s.parser.ParseExpenseSheet(cashGrid, &s.layout.ExpenseCash, models.PaymentCash)
	accountRecords := s.parser.ParseExpenseSheet(accountGrid, &s.layout.ExpenseAccount, models.PaymentAccount)
	return transform.CombineExpenses(cashRecords, accountRecords), nil
}

func (s *Service) fetchBreakfast(ctx context.Context, q Query) (*models.BreakfastInfo, error) {
	grid, err := s.sources.Breakfast.ReadRange(ctx, s.layout.Breakfast.Sheet+"!"+s.layout.Breakfast.Range)
	if err != nil {
		return nil, err
	}
	entries := s.parser.ParseBreakfastSheet(grid, s.layout.Breakfast.Columns)
	info := transform.SumBreakfast(entries, q.From, q.To)
	return &info, nil
}

// stampSources attaches last-modified stamps best-effort; a metadata failure
// never fails the report.
func (s *Service) stampSources(ctx context.Context, report *Report) {
	if s.sources.Revenue != nil {
		if t, err := s.sources.Revenue.ModifiedTime(ctx); err != nil {
			s.logger.Warn("failed to read revenue source metadata", "error", err)
		} else {
			report.RevenueLastModified = t
			report.LastModified = t
		}
	}
	if s.sources.Expense != nil {
		if t, err := s.sources.Expense.ModifiedTime(ctx); err != nil {
			s.logger.Warn("failed to read expense source metadata", "error", err)
		} else {
			report.ExpenseLastModified = t
		}
	}
}

func filterRows(data []models.AggregatedDailyUnit, q Query) []models.AggregatedDailyUnit {
	out := data[:0:0]
	for _, row := range data {
		if q.From != "" && row.Date < q.From {
			continue
		}
		if q.To != "" && row.Date > q.To {
			continue
		}
		if q.Unit != "" && q.Unit != "all" && string(row.Unit) != q.Unit {
			continue
		}
		out = append(out, row)
	}
	return out
}
