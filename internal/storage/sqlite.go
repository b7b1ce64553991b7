package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteTransactionStore keeps the ledger in a SQLite database. Amounts are
// stored as their canonical two-decimal strings so nothing ever passes
// through a float.
type SQLiteTransactionStore struct {
	db *sql.DB
}

func NewSQLiteTransactionStore(dbPath string) (*SQLiteTransactionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteTransactionStore{db: db}, nil
}

func (s *SQLiteTransactionStore) Add(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, kind, amount, description, category, user_id, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Kind), tx.Amount.String(), tx.Description,
		tx.Category.Name, tx.UserID, tx.OccurredAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *SQLiteTransactionStore) Get(ctx context.Context, id, userID string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, amount, description, category, user_id, occurred_at
		 FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (s *SQLiteTransactionStore) ListByUser(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, amount, description, category, user_id, occurred_at
		 FROM transactions WHERE user_id = ? ORDER BY occurred_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (s *SQLiteTransactionStore) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteTransactionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx         core.Transaction
		kind       string
		amount     string
		category   string
		occurredAt string
	)
	if err := row.Scan(&tx.ID, &kind, &amount, &tx.Description, &category, &tx.UserID, &occurredAt); err != nil {
		return core.Transaction{}, err
	}
	m, err := core.NewMoney(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, occurredAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored timestamp %q: %w", occurredAt, err)
	}
	tx.Kind = core.Kind(kind)
	tx.Amount = m
	tx.Category = core.Category{Name: category}
	tx.OccurredAt = ts.UTC()
	return tx, nil
}
