package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// PortfolioSummary aggregates a user's positions.
type PortfolioSummary struct {
	Invested core.Money `json:"invested"`
	Current  core.Money `json:"current"`
	Profit   core.Money `json:"profit"`
	Count    int        `json:"count"`
}

// InvestmentService manages tracked positions and their projections.
type InvestmentService struct {
	store  InvestmentStore
	logger *log.Logger
}

func NewInvestmentService(store InvestmentStore, logger *log.Logger) *InvestmentService {
	return &InvestmentService{
		store:  store,
		logger: logger.WithComponent(log.ComponentInvestment),
	}
}

func (s *InvestmentService) Create(ctx context.Context, userID, name string, typ core.InvestmentType, initial, current core.Money, monthlyRate float64, startDate time.Time, notes string) (core.Investment, error) {
	inv, err := core.NewInvestment(name, typ, initial, current, monthlyRate, userID, startDate, notes)
	if err != nil {
		return core.Investment{}, err
	}
	if err := s.store.Add(ctx, inv); err != nil {
		return core.Investment{}, fmt.Errorf("persist investment: %w", err)
	}
	s.logger.InfoContext(ctx, "investment created",
		log.FieldUserID, userID, "investment_id", inv.ID, "name", inv.Name)
	return inv, nil
}

func (s *InvestmentService) Get(ctx context.Context, id, userID string) (core.Investment, error) {
	return s.store.Get(ctx, id, userID)
}

func (s *InvestmentService) List(ctx context.Context, userID string) ([]core.Investment, error) {
	return s.store.ListByUser(ctx, userID)
}

// Update applies a partial update and persists the result.
func (s *InvestmentService) Update(ctx context.Context, id, userID string, update core.InvestmentUpdate) (core.Investment, error) {
	inv, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return core.Investment{}, err
	}
	updated, err := inv.Apply(update)
	if err != nil {
		return core.Investment{}, err
	}
	if err := s.store.Replace(ctx, updated); err != nil {
		return core.Investment{}, fmt.Errorf("persist investment update: %w", err)
	}
	return updated, nil
}

func (s *InvestmentService) Delete(ctx context.Context, id, userID string) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "investment deleted", log.FieldUserID, userID, "investment_id", id)
	return nil
}

// Portfolio sums every position of the user.
func (s *InvestmentService) Portfolio(ctx context.Context, userID string) (PortfolioSummary, error) {
	investments, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return PortfolioSummary{}, err
	}
	summary := PortfolioSummary{
		Invested: core.ZeroMoney(),
		Current:  core.ZeroMoney(),
		Profit:   core.ZeroMoney(),
		Count:    len(investments),
	}
	for _, inv := range investments {
		summary.Invested = summary.Invested.Add(inv.InitialAmount)
		summary.Current = summary.Current.Add(inv.CurrentAmount)
	}
	summary.Profit = summary.Current.Sub(summary.Invested)
	return summary, nil
}

// Project runs a fixed-contribution projection seeded from the position's
// current value and monthly rate.
func (s *InvestmentService) Project(ctx context.Context, id, userID string, contribution core.Money, months int) (core.SimulationResult, error) {
	inv, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return core.SimulationResult{}, err
	}
	return core.SimulateFixedContribution(inv.CurrentAmount, contribution, inv.MonthlyRate, months)
}
