package services

import (
	"context"
	"sort"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// ReportService aggregates the ledger into named reports.
type ReportService struct {
	store  TransactionStore
	logger *log.Logger
}

func NewReportService(store TransactionStore, logger *log.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger.WithComponent(log.ComponentFinance),
	}
}

// ByCategory returns net totals per category, optionally restricted to an
// inclusive date range.
func (s *ReportService) ByCategory(ctx context.Context, userID string, dateRange *core.DateRange) (map[string]core.Money, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return core.Report(txs, core.GroupByCategory, dateRange), nil
}

// ByMonth returns net totals per UTC calendar month ("2025-01").
func (s *ReportService) ByMonth(ctx context.Context, userID string, dateRange *core.DateRange) (map[string]core.Money, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return core.Report(txs, core.GroupByMonth, dateRange), nil
}

// MonthlyByCategory breaks each month down per category. Passing zero for
// year or month leaves that filter off.
func (s *ReportService) MonthlyByCategory(ctx context.Context, userID string, year, month int) (map[string]map[string]core.Money, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return core.MonthlyCategoryReport(txs, year, month), nil
}

// CategoryByMonth traces a single category across months, optionally within
// one year.
func (s *ReportService) CategoryByMonth(ctx context.Context, userID, category string, year int) (map[string]core.Money, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return core.CategoryMonthlyReport(txs, category, year), nil
}

// MonthlySummary splits each month into income, expense and net balance.
func (s *ReportService) MonthlySummary(ctx context.Context, userID string) (map[string]core.MonthSummary, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return core.SummarizeByMonth(txs), nil
}

// AvailableMonths lists the months the user has entries in, newest first.
func (s *ReportService) AvailableMonths(ctx context.Context, userID string) ([]string, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var months []string
	for _, tx := range txs {
		key := tx.MonthKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		months = append(months, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}
