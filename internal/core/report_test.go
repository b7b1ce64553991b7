package core

import (
	"testing"
	"time"
)

func mustTx(t *testing.T, kind Kind, amount, category string, occurred time.Time) Transaction {
	t.Helper()
	tx, err := NewTransaction(kind, MustMoney(amount), "test entry", category, "u1", occurred)
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

func TestBalance(t *testing.T) {
	if got := Balance(nil); !got.Equal(ZeroMoney()) {
		t.Fatalf("empty balance: got %s", got)
	}

	jan := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	txs := []Transaction{
		mustTx(t, Income, "1000.00", "Salary", jan),
		mustTx(t, Expense, "200.00", "Food", jan),
		mustTx(t, Expense, "100.00", "Transport", jan),
	}
	if got := Balance(txs); !got.Equal(MustMoney("700.00")) {
		t.Fatalf("balance: got %s", got)
	}
}

func TestReportByCategory(t *testing.T) {
	jan := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	txs := []Transaction{
		mustTx(t, Income, "3000.00", "Salary", jan),
		mustTx(t, Expense, "500.00", "Food", jan),
		mustTx(t, Expense, "120.50", "Food", jan),
	}

	report := Report(txs, GroupByCategory, nil)
	if len(report) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(report))
	}
	if !report["Salary"].Equal(MustMoney("3000.00")) {
		t.Fatalf("salary group: got %s", report["Salary"])
	}
	if !report["Food"].Equal(MustMoney("-620.50")) {
		t.Fatalf("food group: got %s", report["Food"])
	}
}

func TestReportByMonth(t *testing.T) {
	txs := []Transaction{
		mustTx(t, Income, "1000.00", "Salary", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "300.00", "Food", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "50.00", "Food", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	report := Report(txs, GroupByMonth, nil)
	if !report["2025-01"].Equal(MustMoney("700.00")) {
		t.Fatalf("2025-01: got %s", report["2025-01"])
	}
	if !report["2025-02"].Equal(MustMoney("-50.00")) {
		t.Fatalf("2025-02: got %s", report["2025-02"])
	}
}

func TestReportSumsEqualBalance(t *testing.T) {
	txs := []Transaction{
		mustTx(t, Income, "1234.56", "Salary", time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "78.90", "Food", time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "333.33", "Home", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Income, "10.01", "Gift", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
	}
	balance := Balance(txs)

	for _, groupBy := range []GroupBy{GroupByCategory, GroupByMonth} {
		sum := ZeroMoney()
		for _, v := range Report(txs, groupBy, nil) {
			sum = sum.Add(v)
		}
		if !sum.Equal(balance) {
			t.Fatalf("group sums (%s) %s != balance %s", groupBy, sum, balance)
		}
	}
}

func TestReportDateRangeFilter(t *testing.T) {
	txs := []Transaction{
		mustTx(t, Expense, "10.00", "Food", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "20.00", "Food", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "40.00", "Food", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	report := Report(txs, GroupByCategory, &DateRange{Start: &start, End: &end})

	// Bounds are inclusive: the 15 Jan and 1 Feb entries are in, 1 Jan is out.
	if !report["Food"].Equal(MustMoney("-60.00")) {
		t.Fatalf("filtered total: got %s", report["Food"])
	}

	empty := Report(nil, GroupByCategory, nil)
	if len(empty) != 0 {
		t.Fatalf("empty input should yield empty report, got %v", empty)
	}
}

func TestSummarizeByMonth(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		mustTx(t, Income, "5000.00", "Salary", jan),
		mustTx(t, Expense, "3000.00", "Home", jan),
	}

	summary := SummarizeByMonth(txs)
	s, ok := summary["2025-01"]
	if !ok {
		t.Fatal("missing 2025-01")
	}
	if !s.Income.Equal(MustMoney("5000.00")) || !s.Expense.Equal(MustMoney("3000.00")) || !s.Balance.Equal(MustMoney("2000.00")) {
		t.Fatalf("summary: %+v", s)
	}
}

func TestMonthlyCategoryReport(t *testing.T) {
	txs := []Transaction{
		mustTx(t, Income, "3000.00", "Salary", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "500.00", "Food", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "80.00", "Food", time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "40.00", "Food", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)),
	}

	report := MonthlyCategoryReport(txs, 0, 0)
	if len(report) != 3 {
		t.Fatalf("expected 3 months, got %v", report)
	}
	if !report["2025-01"]["Salary"].Equal(MustMoney("3000.00")) {
		t.Fatalf("2025-01 Salary: %s", report["2025-01"]["Salary"])
	}
	if !report["2025-01"]["Food"].Equal(MustMoney("-500.00")) {
		t.Fatalf("2025-01 Food: %s", report["2025-01"]["Food"])
	}

	byYear := MonthlyCategoryReport(txs, 2025, 0)
	if len(byYear) != 2 {
		t.Fatalf("year filter: got %v", byYear)
	}

	byMonth := MonthlyCategoryReport(txs, 2025, 2)
	if len(byMonth) != 1 || !byMonth["2025-02"]["Food"].Equal(MustMoney("-80.00")) {
		t.Fatalf("month filter: got %v", byMonth)
	}
}

func TestCategoryMonthlyReport(t *testing.T) {
	txs := []Transaction{
		mustTx(t, Expense, "500.00", "Food", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "80.00", "Food", time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Expense, "40.00", "Food", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)),
		mustTx(t, Income, "3000.00", "Salary", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)),
	}

	series := CategoryMonthlyReport(txs, "Food", 0)
	if len(series) != 3 {
		t.Fatalf("expected 3 months, got %v", series)
	}
	if !series["2025-01"].Equal(MustMoney("-500.00")) {
		t.Fatalf("2025-01: %s", series["2025-01"])
	}

	scoped := CategoryMonthlyReport(txs, "Food", 2025)
	if len(scoped) != 2 {
		t.Fatalf("year filter: got %v", scoped)
	}
	if got := CategoryMonthlyReport(txs, "Travel", 0); len(got) != 0 {
		t.Fatalf("unknown category should be empty, got %v", got)
	}
}
