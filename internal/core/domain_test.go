package core

import (
	"errors"
	"testing"
	"time"
)

func TestNewTransactionValidation(t *testing.T) {
	amount := MustMoney("45.90")
	cases := []struct {
		name    string
		kind    Kind
		amount  Money
		desc    string
		cat     string
		user    string
		wantErr error
	}{
		{"valid income", Income, amount, "salary", "Work", "u1", nil},
		{"valid expense", Expense, amount, "groceries", "Food", "u1", nil},
		{"bad kind", Kind("transfer"), amount, "x", "Food", "u1", ErrInvalidKind},
		{"zero amount", Income, ZeroMoney(), "x", "Food", "u1", ErrNonPositiveAmount},
		{"negative amount", Income, MustMoney("-1"), "x", "Food", "u1", ErrNonPositiveAmount},
		{"blank description", Income, amount, "   ", "Food", "u1", ErrEmptyDescription},
		{"blank category", Income, amount, "x", "  ", "u1", ErrInvalidCategory},
		{"blank owner", Income, amount, "x", "Food", "", ErrEmptyOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := NewTransaction(tc.kind, tc.amount, tc.desc, tc.cat, tc.user, time.Time{})
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tx.ID == "" {
				t.Fatal("expected generated id")
			}
			if tx.OccurredAt.Location() != time.UTC {
				t.Fatalf("timestamp not UTC: %v", tx.OccurredAt)
			}
		})
	}
}

func TestTransactionTimestampCoercion(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	local := time.Date(2025, 3, 31, 23, 30, 0, 0, loc)

	tx, err := NewTransaction(Expense, MustMoney("10"), "late dinner", "Food", "u1", local)
	if err != nil {
		t.Fatal(err)
	}
	if tx.OccurredAt.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", tx.OccurredAt.Location())
	}
	// 23:30 BRT on the 31st is already April 1st in UTC; month grouping
	// follows the UTC calendar.
	if got := tx.MonthKey(); got != "2025-04" {
		t.Fatalf("month key: got %s", got)
	}
}

func TestSignedAmount(t *testing.T) {
	income, err := NewTransaction(Income, MustMoney("1000"), "salary", "Work", "u1", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	expense, err := NewTransaction(Expense, MustMoney("200"), "rent", "Home", "u1", time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	if got := income.SignedAmount(); !got.Equal(MustMoney("1000.00")) {
		t.Fatalf("income signed amount: got %s", got)
	}
	if got := expense.SignedAmount(); !got.Equal(MustMoney("-200.00")) {
		t.Fatalf("expense signed amount: got %s", got)
	}
	// |signed| == amount for both kinds.
	if !expense.SignedAmount().Neg().Equal(expense.Amount) {
		t.Fatal("expense magnitude mismatch")
	}
}

func TestInvestmentProfit(t *testing.T) {
	inv, err := NewInvestment("CDB", FixedIncome, MustMoney("1000"), MustMoney("1080.50"), 0.008, "u1", time.Time{}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := inv.Profit(); !got.Equal(MustMoney("80.50")) {
		t.Fatalf("profit: got %s", got)
	}
	if pct := inv.ProfitPercent(); pct < 8.04 || pct > 8.06 {
		t.Fatalf("profit percent: got %f", pct)
	}
}

func TestInvestmentApplyPartialUpdate(t *testing.T) {
	inv, err := NewInvestment("CDB", FixedIncome, MustMoney("1000"), MustMoney("1000"), 0.008, "u1", time.Time{}, "bank")
	if err != nil {
		t.Fatal(err)
	}

	current := MustMoney("1100")
	updated, err := inv.Apply(InvestmentUpdate{CurrentAmount: &current})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != inv.ID {
		t.Fatal("update must keep the id")
	}
	if !updated.CurrentAmount.Equal(current) {
		t.Fatalf("current amount not applied: %s", updated.CurrentAmount)
	}
	if updated.Name != "CDB" || updated.Notes != "bank" || updated.MonthlyRate != 0.008 {
		t.Fatal("untouched fields must carry over")
	}

	bad := MustMoney("-1")
	if _, err := inv.Apply(InvestmentUpdate{CurrentAmount: &bad}); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestInvestmentTypeValidation(t *testing.T) {
	_, err := NewInvestment("x", InvestmentType("bonds"), MustMoney("1"), MustMoney("1"), 0, "u1", time.Time{}, "")
	if !errors.Is(err, ErrInvalidInvestmentType) {
		t.Fatalf("expected ErrInvalidInvestmentType, got %v", err)
	}
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("kaiky", "Kaiky@Example.COM", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "kaiky@example.com" {
		t.Fatalf("email not normalized: %s", u.Email)
	}
	if !u.VerifyPassword("secret1") {
		t.Fatal("password should verify")
	}
	if u.VerifyPassword("wrong") {
		t.Fatal("wrong password should not verify")
	}

	if _, err := NewUser("kaiky", "no-at-sign", "secret1"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := NewUser("kaiky", "a@b.c", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
