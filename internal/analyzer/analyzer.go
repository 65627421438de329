// Package analyzer implements the in-memory aggregation engine for bank
// statement records.
//
// An Analyzer is constructed over an immutable snapshot of records; its four
// queries are read-only, independent, and recompute their result from
// scratch on every call. Statements missing a field a query requires are
// excluded from that query's totals, not counted as zero.
//
// Two of the queries distinguish "no data" (none of the required fields
// present anywhere in the input) from a successful empty result. That
// distinction is reported through ErrNoData and is part of the contract:
// callers translate it into an explicit message rather than an empty success
// body. The weekday aggregation deliberately does NOT use the sentinel and
// reports an empty list instead.
package analyzer

import (
	"errors"
	"sort"
	"time"

	"golang-statement-analyzer/internal/models"
	apperrors "golang-statement-analyzer/pkg/errors"

	"github.com/shopspring/decimal"
)

// ErrNoData signals that the fields a query requires were absent across the
// entire input set. Callers distinguish it from an empty successful result
// with errors.Is.
var ErrNoData = errors.New("required fields missing across the input set")

// Analyzer performs spending aggregations over a fixed collection of bank
// statement records
type Analyzer struct {
	statements []*models.BankStatement
}

// New creates an Analyzer over the given statement snapshot
func New(statements []*models.BankStatement) *Analyzer {
	return &Analyzer{statements: statements}
}

// totalsAccumulator accumulates decimal totals by string key while
// remembering first-seen key order. Iteration-order tie-breaks in the
// queries rely on this explicit ordering, never on map iteration.
type totalsAccumulator struct {
	totals map[string]decimal.Decimal
	order  []string
}

func newTotalsAccumulator() *totalsAccumulator {
	return &totalsAccumulator{totals: make(map[string]decimal.Decimal)}
}

// get returns the running total for key, or zero when the key is unseen
func (acc *totalsAccumulator) get(key string) decimal.Decimal {
	if total, ok := acc.totals[key]; ok {
		return total
	}
	return decimal.Zero
}

func (acc *totalsAccumulator) add(key string, amount decimal.Decimal) {
	if _, seen := acc.totals[key]; !seen {
		acc.order = append(acc.order, key)
	}
	acc.totals[key] = acc.get(key).Add(amount)
}

func (acc *totalsAccumulator) empty() bool {
	return len(acc.order) == 0
}

// ExecutionTypesWithAmounts returns the signed amount total per transaction
// type, in first-seen order. Statements lacking either the transaction type
// or the amount are excluded. When no statement carries both fields the
// query reports ErrNoData.
func (a *Analyzer) ExecutionTypesWithAmounts() ([]models.ExecutionTypeWithAmounts, error) {
	acc := newTotalsAccumulator()

	for _, s := range a.statements {
		if !s.HasTransactionType() || !s.HasAmount() {
			continue
		}
		acc.add(s.TransactionType, *s.Amount)
	}

	if acc.empty() {
		return nil, apperrors.AnalysisError(apperrors.CodeInsufficientData,
			"execution type totals", ErrNoData)
	}

	results := make([]models.ExecutionTypeWithAmounts, 0, len(acc.order))
	for _, txType := range acc.order {
		results = append(results, models.ExecutionTypeWithAmounts{
			TransactionType: txType,
			TotalAmount:     acc.get(txType),
		})
	}

	return results, nil
}

// TopSpendingCategoriesForMonth returns up to top categories by spend
// magnitude for the given month and year, sorted descending. Only statements
// with date, amount, and category set, a date inside the requested month,
// and a strictly negative amount participate; a zero amount is not spend.
// Equal totals keep first-seen order. When the filter matches nothing the
// query reports ErrNoData.
func (a *Analyzer) TopSpendingCategoriesForMonth(top int, month time.Month, year int) ([]models.TopSpendingCategoryForMonth, error) {
	acc := newTotalsAccumulator()

	for _, s := range a.statements {
		if !s.HasDate() || !s.HasAmount() || !s.HasCategory() {
			continue
		}
		if s.Date.Month() != month || s.Date.Year() != year {
			continue
		}
		if !s.IsSpend() {
			continue
		}
		acc.add(s.Category, s.AbsoluteAmount())
	}

	if acc.empty() {
		return nil, apperrors.AnalysisError(apperrors.CodeInsufficientData,
			"top spending categories", ErrNoData)
	}

	results := make([]models.TopSpendingCategoryForMonth, 0, len(acc.order))
	for _, category := range acc.order {
		results = append(results, models.TopSpendingCategoryForMonth{
			Category:    category,
			TotalAmount: acc.get(category),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalAmount.GreaterThan(results[j].TotalAmount)
	})

	if top < 0 {
		top = 0
	}
	if top < len(results) {
		results = results[:top]
	}

	return results, nil
}

// MostAmountSpentPerWeekday returns the signed amount total per weekday
// name, in first-seen order. Statements lacking date or amount are excluded.
// An input with no qualifying statements yields an empty list, not
// ErrNoData; this asymmetry with the other queries is intentional and relied
// on by the presentation layer.
func (a *Analyzer) MostAmountSpentPerWeekday() []models.AmountPerWeekday {
	acc := newTotalsAccumulator()

	for _, s := range a.statements {
		if !s.HasDate() || !s.HasAmount() {
			continue
		}
		acc.add(s.Weekday(), *s.Amount)
	}

	results := make([]models.AmountPerWeekday, 0, len(acc.order))
	for _, weekday := range acc.order {
		results = append(results, models.AmountPerWeekday{
			Weekday:     weekday,
			TotalAmount: acc.get(weekday),
		})
	}

	return results
}

// HighestSpendingDay returns the weekday with the highest total. Ties
// resolve to the first maximal entry in discovery order since the comparison
// is strictly greater-than. An empty weekday aggregation reports ErrNoData.
func (a *Analyzer) HighestSpendingDay() (*models.AmountPerWeekday, error) {
	days := a.MostAmountSpentPerWeekday()
	if len(days) == 0 {
		return nil, apperrors.AnalysisError(apperrors.CodeInsufficientData,
			"highest spending day", ErrNoData)
	}

	highest := days[0]
	for _, day := range days[1:] {
		if day.TotalAmount.GreaterThan(highest.TotalAmount) {
			highest = day
		}
	}

	return &highest, nil
}
