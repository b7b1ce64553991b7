package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

func testLogger() *log.Logger {
	return log.New("test", slog.LevelError)
}

func TestFinanceServiceAddAndBalance(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(storage.NewMemoryTransactionStore(), testLogger())

	_, err := svc.AddTransaction(ctx, "u1", core.Income, core.MustMoney("1000"), "salary", "Work", time.Time{})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, "u1", core.Expense, core.MustMoney("300"), "rent", "Home", time.Time{})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, "u2", core.Income, core.MustMoney("99"), "other user", "Work", time.Time{})
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(core.MustMoney("700.00")), "balance %s", balance)

	list, err := svc.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFinanceServiceRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(storage.NewMemoryTransactionStore(), testLogger())

	_, err := svc.AddTransaction(ctx, "u1", core.Kind("transfer"), core.MustMoney("10"), "x", "Food", time.Time{})
	assert.ErrorIs(t, err, core.ErrInvalidKind)

	_, err = svc.AddTransaction(ctx, "u1", core.Expense, core.MustMoney("-5"), "x", "Food", time.Time{})
	assert.ErrorIs(t, err, core.ErrNonPositiveAmount)

	_, err = svc.AddTransaction(ctx, "u1", core.Expense, core.MustMoney("5"), "x", "  ", time.Time{})
	assert.ErrorIs(t, err, core.ErrInvalidCategory)
}

func TestFinanceServiceRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(storage.NewMemoryTransactionStore(), testLogger())

	tx, err := svc.AddTransaction(ctx, "u1", core.Expense, core.MustMoney("10"), "coffee", "Food", time.Time{})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveTransaction(ctx, tx.ID, "u1"))
	err = svc.RemoveTransaction(ctx, tx.ID, "u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReportServiceByCategory(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryTransactionStore()
	finance := NewFinanceService(store, testLogger())
	reports := NewReportService(store, testLogger())

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	_, err := finance.AddTransaction(ctx, "u1", core.Income, core.MustMoney("3000"), "salary", "Work", jan)
	require.NoError(t, err)
	_, err = finance.AddTransaction(ctx, "u1", core.Expense, core.MustMoney("500"), "groceries", "Food", jan)
	require.NoError(t, err)
	_, err = finance.AddTransaction(ctx, "u1", core.Expense, core.MustMoney("100"), "groceries", "Food", feb)
	require.NoError(t, err)

	byCategory, err := reports.ByCategory(ctx, "u1", nil)
	require.NoError(t, err)
	assert.True(t, byCategory["Work"].Equal(core.MustMoney("3000.00")))
	assert.True(t, byCategory["Food"].Equal(core.MustMoney("-600.00")))

	byMonth, err := reports.ByMonth(ctx, "u1", nil)
	require.NoError(t, err)
	assert.True(t, byMonth["2025-01"].Equal(core.MustMoney("2500.00")))
	assert.True(t, byMonth["2025-02"].Equal(core.MustMoney("-100.00")))

	months, err := reports.AvailableMonths(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02", "2025-01"}, months)

	summary, err := reports.MonthlySummary(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, summary["2025-01"].Income.Equal(core.MustMoney("3000.00")))
	assert.True(t, summary["2025-01"].Expense.Equal(core.MustMoney("500.00")))
	assert.True(t, summary["2025-01"].Balance.Equal(core.MustMoney("2500.00")))
}

func TestInvestmentServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewInvestmentStore(t.TempDir())
	require.NoError(t, err)
	svc := NewInvestmentService(store, testLogger())

	inv, err := svc.Create(ctx, "u1", "CDB", core.FixedIncome,
		core.MustMoney("1000"), core.MustMoney("1000"), 0.008, time.Time{}, "")
	require.NoError(t, err)

	current := core.MustMoney("1100")
	updated, err := svc.Update(ctx, inv.ID, "u1", core.InvestmentUpdate{CurrentAmount: &current})
	require.NoError(t, err)
	assert.True(t, updated.CurrentAmount.Equal(current))

	portfolio, err := svc.Portfolio(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, portfolio.Count)
	assert.True(t, portfolio.Profit.Equal(core.MustMoney("100.00")), "profit %s", portfolio.Profit)

	projection, err := svc.Project(ctx, inv.ID, "u1", core.MustMoney("100"), 1)
	require.NoError(t, err)
	// 1100 + 8.80 interest + 100 contribution
	assert.True(t, projection.FinalBalance.Equal(core.MustMoney("1208.80")), "balance %s", projection.FinalBalance)

	require.NoError(t, svc.Delete(ctx, inv.ID, "u1"))
	_, err = svc.Get(ctx, inv.ID, "u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
