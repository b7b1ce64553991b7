package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind is the closed set of ledger entry directions. Direction is carried
	// by the kind, never by the sign of the amount.
	Kind string

	// Category names a transaction bucket. Validated at the boundary so the
	// services never pass unchecked strings around.
	Category struct {
		Name string `json:"name"`
	}

	// Transaction is one immutable ledger entry. Updates are modeled as
	// replace-with-new-value carrying the same ID.
	Transaction struct {
		ID          string    `json:"id"`
		Kind        Kind      `json:"kind"`
		Amount      Money     `json:"amount"`
		Description string    `json:"description"`
		Category    Category  `json:"category"`
		UserID      string    `json:"user_id"`
		OccurredAt  time.Time `json:"occurred_at"`
	}
)

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func NewCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrInvalidCategory
	}
	return Category{Name: name}, nil
}

// NewTransaction validates and builds a ledger entry. A zero occurredAt
// defaults to the current UTC time; any other timestamp is coerced to UTC.
func NewTransaction(kind Kind, amount Money, description, category, userID string, occurredAt time.Time) (Transaction, error) {
	cat, err := NewCategory(category)
	if err != nil {
		return Transaction{}, err
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	tx := Transaction{
		ID:          uuid.New().String(),
		Kind:        kind,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Category:    cat,
		UserID:      strings.TrimSpace(userID),
		OccurredAt:  occurredAt.UTC(),
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Validate checks the construction invariants. Also used on records read back
// from storage, which may predate the current rules.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !t.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(t.UserID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(t.Category.Name) == "" {
		return ErrInvalidCategory
	}
	return nil
}

// SignedAmount applies the kind to the stored magnitude: income is positive,
// expense negative.
func (t Transaction) SignedAmount() Money {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// MonthKey returns the calendar year-month of the UTC timestamp ("2025-01").
func (t Transaction) MonthKey() string {
	return t.OccurredAt.UTC().Format("2006-01")
}
