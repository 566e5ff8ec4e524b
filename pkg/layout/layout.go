// Package layout describes where each business unit's data lives inside the
// hand-maintained source sheets. The defaults mirror the current sheet
// structure; a YAML file can override them when the bookkeepers move columns.
package layout

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/termopark/finboard/pkg/models"
)

// RevenueColumns are column offsets inside one unit's revenue block,
// relative to the block's own range. A nil field means the block has no such
// column.
type RevenueColumns struct {
	Date           *int `yaml:"date"`
	BankLegal      *int `yaml:"bankLegal"`
	BankIndividual *int `yaml:"bankIndividual"`
	Online         *int `yaml:"online"`
	Terminal       *int `yaml:"terminal"`
	Cash           *int `yaml:"cash"`
}

// MoneyColumns returns the defined monetary column offsets of the block.
func (c RevenueColumns) MoneyColumns() []int {
	var cols []int
	for _, p := range []*int{c.BankLegal, c.BankIndividual, c.Online, c.Terminal, c.Cash} {
		if p != nil {
			cols = append(cols, *p)
		}
	}
	return cols
}

// RevenueBlock binds one unit to its column range in the revenue sheet.
type RevenueBlock struct {
	Unit    models.BusinessUnit `yaml:"unit"`
	Range   string              `yaml:"range"`
	Columns RevenueColumns      `yaml:"columns"`
}

// RevenueLayout is the full revenue sheet description.
type RevenueLayout struct {
	Sheet  string         `yaml:"sheet"`
	Blocks []RevenueBlock `yaml:"blocks"`
}

// ExpenseColumns is the (date, amount, category) triple of one unit inside an
// expense ledger sheet.
type ExpenseColumns struct {
	Date     int `yaml:"date"`
	Amount   int `yaml:"amount"`
	Category int `yaml:"category"`
}

// ExpenseSheet describes one of the two expense ledgers.
type ExpenseSheet struct {
	Sheet string                                  `yaml:"sheet"`
	Range string                                  `yaml:"range"`
	Units map[models.BusinessUnit]ExpenseColumns `yaml:"units"`
}

// SortedUnits returns the sheet's units in canonical order so parsing is
// deterministic.
func (s *ExpenseSheet) SortedUnits() []models.BusinessUnit {
	units := make([]models.BusinessUnit, 0, len(s.Units))
	for u := range s.Units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })
	return units
}

// BreakfastColumns locates the breakfast ledger's fields.
type BreakfastColumns struct {
	Date   int `yaml:"date"`
	Count  int `yaml:"count"`
	Amount int `yaml:"amount"`
}

// BreakfastLayout describes the optional breakfast ledger sheet.
type BreakfastLayout struct {
	Sheet   string           `yaml:"sheet"`
	Range   string           `yaml:"range"`
	Columns BreakfastColumns `yaml:"columns"`
}

// Layout bundles every sheet description the pipeline needs.
type Layout struct {
	Revenue        RevenueLayout   `yaml:"revenue"`
	ExpenseCash    ExpenseSheet    `yaml:"expenseCash"`
	ExpenseAccount ExpenseSheet    `yaml:"expenseAccount"`
	Breakfast      BreakfastLayout `yaml:"breakfast"`
}

func col(i int) *int { return &i }

// Default returns the layout of the sheets as they are maintained today.
func Default() *Layout {
	return &Layout{
		Revenue: RevenueLayout{
			Sheet: "Выручка",
			Blocks: []RevenueBlock{
				// Hotel: B(date) C(bank legal) D(bank individual) E(online) F(terminal) G(cash)
				{Unit: models.UnitHotel, Range: "B:G", Columns: RevenueColumns{
					Date: col(0), BankLegal: col(1), BankIndividual: col(2), Online: col(3), Terminal: col(4), Cash: col(5),
				}},
				// Restaurant: J(date) K(bank) L(acquiring) M(cash)
				{Unit: models.UnitRestaurant, Range: "J:M", Columns: RevenueColumns{
					Date: col(0), BankLegal: col(1), Terminal: col(2), Cash: col(3),
				}},
				// Spa: P(date) Q(bank) R(acquiring) S(cash)
				{Unit: models.UnitSpa, Range: "P:S", Columns: RevenueColumns{
					Date: col(0), BankLegal: col(1), Terminal: col(2), Cash: col(3),
				}},
				// Pool: V(date) W(unused) X(acquiring) Y(cash)
				{Unit: models.UnitPool, Range: "V:Y", Columns: RevenueColumns{
					Date: col(0), Terminal: col(2), Cash: col(3),
				}},
				// Bar: AB(date) AC(unused) AD(acquiring) AE(cash)
				{Unit: models.UnitBar, Range: "AB:AE", Columns: RevenueColumns{
					Date: col(0), Terminal: col(2), Cash: col(3),
				}},
			},
		},
		ExpenseCash: ExpenseSheet{
			Sheet: "наличные",
			Range: "A:Z",
			Units: map[models.BusinessUnit]ExpenseColumns{
				models.UnitHotel:      {Date: 1, Amount: 3, Category: 4},
				models.UnitRestaurant: {Date: 7, Amount: 9, Category: 10},
				models.UnitSpa:        {Date: 13, Amount: 15, Category: 16},
				models.UnitPool:       {Date: 19, Amount: 21, Category: 22},
			},
		},
		ExpenseAccount: ExpenseSheet{
			Sheet: "Счет",
			Range: "A:Z",
			Units: map[models.BusinessUnit]ExpenseColumns{
				models.UnitHotel:      {Date: 0, Amount: 2, Category: 3},
				models.UnitRestaurant: {Date: 6, Amount: 8, Category: 9},
				models.UnitSpa:        {Date: 12, Amount: 14, Category: 15},
			},
		},
		Breakfast: BreakfastLayout{
			Sheet:   "Завтраки",
			Range:   "A:C",
			Columns: BreakfastColumns{Date: 0, Count: 1, Amount: 2},
		},
	}
}

// Load reads a layout override file on top of the defaults. An empty path
// returns the defaults as-is.
func Load(path string) (*Layout, error) {
	lay := Default()
	if path == "" {
		return lay, lay.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	if err := yaml.Unmarshal(data, lay); err != nil {
		return nil, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if err := lay.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return lay, nil
}

// Validate checks the layout before any money is attributed through it.
// A wrong column map silently books revenue to the wrong unit, so this fails
// loudly at startup instead.
func (l *Layout) Validate() error {
	if l.Revenue.Sheet == "" {
		return fmt.Errorf("revenue sheet name is empty")
	}
	seen := map[models.BusinessUnit]bool{}
	for _, block := range l.Revenue.Blocks {
		if !knownUnit(block.Unit) {
			return fmt.Errorf("revenue block for unknown unit %q", block.Unit)
		}
		if seen[block.Unit] {
			return fmt.Errorf("duplicate revenue block for unit %q", block.Unit)
		}
		seen[block.Unit] = true
		if _, _, err := ParseColumnRange(block.Range); err != nil {
			return fmt.Errorf("revenue block %s: %w", block.Unit, err)
		}
		if block.Columns.Date == nil || *block.Columns.Date < 0 {
			return fmt.Errorf("revenue block %s has no date column", block.Unit)
		}
		if len(block.Columns.MoneyColumns()) == 0 {
			return fmt.Errorf("revenue block %s has no money columns", block.Unit)
		}
	}
	for name, sheet := range map[string]*ExpenseSheet{"cash": &l.ExpenseCash, "account": &l.ExpenseAccount} {
		if sheet.Sheet == "" {
			return fmt.Errorf("%s expense sheet name is empty", name)
		}
		for unit, cols := range sheet.Units {
			if !knownUnit(unit) {
				return fmt.Errorf("%s expense map for unknown unit %q", name, unit)
			}
			if cols.Date < 0 || cols.Amount < 0 || cols.Category < 0 {
				return fmt.Errorf("%s expense map for %s has a negative column index", name, unit)
			}
			if cols.Date == cols.Amount || cols.Amount == cols.Category || cols.Date == cols.Category {
				return fmt.Errorf("%s expense map for %s reuses a column", name, unit)
			}
		}
	}
	return nil
}

func knownUnit(u models.BusinessUnit) bool {
	for _, known := range models.AllUnits() {
		if u == known {
			return true
		}
	}
	return false
}

// ParseColumnRange turns an "A:Z"-style column range into zero-based start
// and end column indices.
func ParseColumnRange(rng string) (start, end int, err error) {
	parts := strings.Split(rng, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed column range %q", rng)
	}
	start, err = columnIndex(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err = columnIndex(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("inverted column range %q", rng)
	}
	return start, end, nil
}

func columnIndex(name string) (int, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	idx := 0
	for _, r := range name {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("malformed column name %q", name)
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1, nil
}
