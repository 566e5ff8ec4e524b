package models

// BusinessUnit identifies one of the resort's operating segments.
type BusinessUnit string

const (
	UnitHotel      BusinessUnit = "hotel"
	UnitRestaurant BusinessUnit = "restaurant"
	UnitSpa        BusinessUnit = "spa"
	UnitPool       BusinessUnit = "pool"
	UnitBar        BusinessUnit = "bar"
)

// AllUnits returns the closed set of business units in canonical order.
func AllUnits() []BusinessUnit {
	return []BusinessUnit{UnitHotel, UnitRestaurant, UnitSpa, UnitPool, UnitBar}
}

// PaymentMethod tells which expense ledger a record came from.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentAccount PaymentMethod = "account"
)

// RevenueBreakdown is the fine-grained payment split behind the coarser
// cash/bank/acquiring triple. Online is additive on top of the triple when
// computing a row's total; it is not part of the bank figure.
type RevenueBreakdown struct {
	BankLegal         float64 `json:"bankLegal"`
	BankIndividual    float64 `json:"bankIndividual"`
	Online            float64 `json:"online"`
	AcquiringTerminal float64 `json:"acquiringTerminal"`
	Cash              float64 `json:"cash"`
}

// RevenueRow is one unit's revenue on one date, already normalized.
type RevenueRow struct {
	Date      string            `json:"date"`
	Unit      BusinessUnit      `json:"unit"`
	Cash      float64           `json:"cash"`
	Bank      float64           `json:"bank"`
	Acquiring float64           `json:"acquiring"`
	Breakdown *RevenueBreakdown `json:"breakdown,omitempty"`
}

// ExpenseRecord is one category-level expense transaction. OriginalDate and
// RowIndex exist for traceability only.
type ExpenseRecord struct {
	Date          string        `json:"date"`
	Unit          BusinessUnit  `json:"unit"`
	Amount        float64       `json:"amount"`
	Category      string        `json:"category"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	OriginalDate  string        `json:"originalDate"`
	RowIndex      int           `json:"rowIndex"`
}

// CategoryDetail is one underlying transaction kept inside ExpenseDetails so
// downstream consumers can recompute category taxonomies without re-parsing.
type CategoryDetail struct {
	Category      string        `json:"category"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	RowIndex      int           `json:"rowIndex"`
}

// ExpenseDetails summarizes all transactions behind one (date, unit) pair.
// Invariant: Total == Cash + Account == sum of CategoryDetails amounts.
type ExpenseDetails struct {
	Cash            float64          `json:"cash"`
	Account         float64          `json:"account"`
	Total           float64          `json:"total"`
	CashCount       int              `json:"cashCount"`
	AccountCount    int              `json:"accountCount"`
	Categories      []string         `json:"categories"`
	CategoryDetails []CategoryDetail `json:"categoryDetails"`
}

// DetailedExpenseRow is one (date, unit) expense summary. Purchases and
// Salaries are kept for the legacy response shape and are always zero; the
// category split is inferred by the presentation layer from the details.
type DetailedExpenseRow struct {
	Date      string          `json:"date"`
	Unit      BusinessUnit    `json:"unit"`
	Purchases float64         `json:"purchases"`
	Salaries  float64         `json:"salaries"`
	Other     float64         `json:"other"`
	Details   *ExpenseDetails `json:"expenseDetails,omitempty"`
}

// RevenueTotals is the revenue side of an aggregated row. Total is
// cash + bank + acquiring plus the breakdown's online component.
type RevenueTotals struct {
	Cash      float64           `json:"cash"`
	Bank      float64           `json:"bank"`
	Acquiring float64           `json:"acquiring"`
	Total     float64           `json:"total"`
	Breakdown *RevenueBreakdown `json:"breakdown,omitempty"`
}

// ExpenseTotals is the expense side of an aggregated row.
type ExpenseTotals struct {
	Purchases float64 `json:"purchases"`
	Salaries  float64 `json:"salaries"`
	Other     float64 `json:"other"`
	Total     float64 `json:"total"`
}

// AggregatedDailyUnit is the canonical output row: exactly one per distinct
// (date, unit) pair present in either source.
type AggregatedDailyUnit struct {
	Date           string          `json:"date"`
	Unit           BusinessUnit    `json:"unit"`
	Revenue        RevenueTotals   `json:"revenue"`
	Expense        ExpenseTotals   `json:"expense"`
	Profit         float64         `json:"profit"`
	ExpenseDetails *ExpenseDetails `json:"expenseDetails,omitempty"`
}

// BreakfastEntry is one row of the breakfast ledger.
type BreakfastEntry struct {
	Date   string  `json:"date"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// BreakfastInfo is the breakfast total over a requested date range.
type BreakfastInfo struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}
