package core

import "time"

const (
	GroupByCategory GroupBy = "category"
	GroupByMonth    GroupBy = "month"
)

type (
	// GroupBy selects the report grouping key.
	GroupBy string

	// DateRange is an optional inclusive filter applied before grouping.
	// Bounds are coerced to UTC.
	DateRange struct {
		Start *time.Time
		End   *time.Time
	}
)

func (g GroupBy) Valid() bool {
	return g == GroupByCategory || g == GroupByMonth
}

// Contains reports whether ts falls inside the range. A nil bound is open.
func (r DateRange) Contains(ts time.Time) bool {
	ts = ts.UTC()
	if r.Start != nil && ts.Before(r.Start.UTC()) {
		return false
	}
	if r.End != nil && ts.After(r.End.UTC()) {
		return false
	}
	return true
}

// Balance sums signed amounts over all transactions. Empty input yields the
// canonical zero.
func Balance(txs []Transaction) Money {
	total := ZeroMoney()
	for _, tx := range txs {
		total = total.Add(tx.SignedAmount())
	}
	return total
}

// Report groups transactions by category name or by "YYYY-MM" of the UTC
// timestamp and sums signed amounts per group. Callers sort the keys as they
// see fit; the map itself carries no ordering.
func Report(txs []Transaction, groupBy GroupBy, dateRange *DateRange) map[string]Money {
	groups := make(map[string]Money)
	for _, tx := range txs {
		if dateRange != nil && !dateRange.Contains(tx.OccurredAt) {
			continue
		}
		key := tx.Category.Name
		if groupBy == GroupByMonth {
			key = tx.MonthKey()
		}
		acc, ok := groups[key]
		if !ok {
			acc = ZeroMoney()
		}
		groups[key] = acc.Add(tx.SignedAmount())
	}
	return groups
}

// MonthlyCategoryReport nests signed totals by "YYYY-MM" and then by
// category. A zero year or month means no filter on that component; the
// month filter only applies when a year is given too.
func MonthlyCategoryReport(txs []Transaction, year, month int) map[string]map[string]Money {
	out := make(map[string]map[string]Money)
	for _, tx := range txs {
		ts := tx.OccurredAt.UTC()
		if year != 0 && ts.Year() != year {
			continue
		}
		if year != 0 && month != 0 && int(ts.Month()) != month {
			continue
		}
		key := tx.MonthKey()
		byCategory, ok := out[key]
		if !ok {
			byCategory = make(map[string]Money)
			out[key] = byCategory
		}
		acc, ok := byCategory[tx.Category.Name]
		if !ok {
			acc = ZeroMoney()
		}
		byCategory[tx.Category.Name] = acc.Add(tx.SignedAmount())
	}
	return out
}

// CategoryMonthlyReport sums one category's signed totals per "YYYY-MM".
// Category matching is exact; a zero year disables the year filter.
func CategoryMonthlyReport(txs []Transaction, category string, year int) map[string]Money {
	out := make(map[string]Money)
	for _, tx := range txs {
		if tx.Category.Name != category {
			continue
		}
		if year != 0 && tx.OccurredAt.UTC().Year() != year {
			continue
		}
		key := tx.MonthKey()
		acc, ok := out[key]
		if !ok {
			acc = ZeroMoney()
		}
		out[key] = acc.Add(tx.SignedAmount())
	}
	return out
}

// MonthSummary is the per-month income/expense/balance rollup.
type MonthSummary struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// SummarizeByMonth rolls transactions up into per-month totals. Income and
// expense are reported as positive magnitudes; balance carries the sign.
func SummarizeByMonth(txs []Transaction) map[string]MonthSummary {
	out := make(map[string]MonthSummary)
	for _, tx := range txs {
		key := tx.MonthKey()
		s, ok := out[key]
		if !ok {
			s = MonthSummary{Income: ZeroMoney(), Expense: ZeroMoney(), Balance: ZeroMoney()}
		}
		if tx.Kind == Income {
			s.Income = s.Income.Add(tx.Amount)
		} else {
			s.Expense = s.Expense.Add(tx.Amount)
		}
		s.Balance = s.Balance.Add(tx.SignedAmount())
		out[key] = s
	}
	return out
}
