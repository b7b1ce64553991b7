package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// FinanceService owns the ledger: adding, listing and removing transactions
// and answering balance queries.
type FinanceService struct {
	store  TransactionStore
	logger *log.Logger
}

func NewFinanceService(store TransactionStore, logger *log.Logger) *FinanceService {
	return &FinanceService{
		store:  store,
		logger: logger.WithComponent(log.ComponentFinance),
	}
}

// AddTransaction validates, persists and returns the new ledger entry.
func (s *FinanceService) AddTransaction(ctx context.Context, userID string, kind core.Kind, amount core.Money, description, category string, occurredAt time.Time) (core.Transaction, error) {
	tx, err := core.NewTransaction(kind, amount, description, category, userID, occurredAt)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.store.Add(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("persist transaction: %w", err)
	}
	s.logger.InfoContext(ctx, "transaction added",
		log.FieldTxID, tx.ID,
		log.FieldUserID, userID,
		log.FieldAmount, tx.Amount.String(),
		log.FieldCategory, tx.Category.Name,
		"kind", string(tx.Kind))
	return tx, nil
}

func (s *FinanceService) GetTransaction(ctx context.Context, id, userID string) (core.Transaction, error) {
	return s.store.Get(ctx, id, userID)
}

func (s *FinanceService) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *FinanceService) RemoveTransaction(ctx context.Context, id, userID string) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "transaction removed", log.FieldTxID, id, log.FieldUserID, userID)
	return nil
}

// Balance is the sum of signed amounts over the whole ledger.
func (s *FinanceService) Balance(ctx context.Context, userID string) (core.Money, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return core.Money{}, err
	}
	return core.Balance(txs), nil
}
