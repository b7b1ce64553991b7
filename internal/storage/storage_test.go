package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

func newTestTx(t *testing.T, userID, amount string) core.Transaction {
	t.Helper()
	tx, err := core.NewTransaction(core.Expense, core.MustMoney(amount), "test entry", "Food", userID, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

func TestJSONTransactionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewJSONTransactionStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	tx := newTestTx(t, "u1", "45.90")
	if err := store.Add(ctx, tx); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, tx.ID, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Amount.Equal(tx.Amount) || got.Category.Name != "Food" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// A fresh store over the same directory must see the persisted record.
	reopened, err := NewJSONTransactionStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	list, err := reopened.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != tx.ID {
		t.Fatalf("persisted list: %+v", list)
	}
}

func TestJSONTransactionStoreOwnershipAndDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONTransactionStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	tx := newTestTx(t, "u1", "10.00")
	if err := store.Add(ctx, tx); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(ctx, tx.ID, "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user get: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, tx.ID, "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user delete: expected ErrNotFound, got %v", err)
	}

	if err := store.Delete(ctx, tx.ID, "u1"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, tx.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestJSONTransactionStoreListOrder(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONTransactionStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	later, err := core.NewTransaction(core.Income, core.MustMoney("5"), "later", "Other", "u1",
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	earlier, err := core.NewTransaction(core.Income, core.MustMoney("5"), "earlier", "Other", "u1",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	for _, tx := range []core.Transaction{later, earlier} {
		if err := store.Add(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	list, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Description != "earlier" {
		t.Fatalf("expected oldest first, got %+v", list)
	}
}

func TestMemoryTransactionStoreMatchesJSONSemantics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTransactionStore()

	tx := newTestTx(t, "u1", "10.00")
	if err := store.Add(ctx, tx); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, tx); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate add: expected ErrDuplicate, got %v", err)
	}
	if _, err := store.Get(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing get: expected ErrNotFound, got %v", err)
	}
}

func TestUserStoreUniqueEmail(t *testing.T) {
	ctx := context.Background()
	store, err := NewUserStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	user, err := core.NewUser("kaiky", "kaiky@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	other, err := core.NewUser("other", "KAIKY@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, other); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := store.GetByEmail(ctx, "kaiky@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != user.ID {
		t.Fatalf("lookup mismatch: %+v", got)
	}
	if _, err := store.GetByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryStoreSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	store, err := NewCategoryStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	categories, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != len(defaultCategories) {
		t.Fatalf("expected %d seeded categories, got %d", len(defaultCategories), len(categories))
	}

	if err := store.Add(ctx, core.Category{Name: "Pets"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, core.Category{Name: "pets"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := store.Remove(ctx, "Pets"); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, "Pets"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssetStoreUpdatePrice(t *testing.T) {
	ctx := context.Background()
	store, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	asset, err := core.NewAsset("petr4", "Petrobras", core.AssetStock, core.MustMoney("38.50"), "BRL", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, asset); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := store.UpdatePrice(ctx, "PETR4", core.MustMoney("40.10"), at); err != nil {
		t.Fatal(err)
	}

	list, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].Price.Equal(core.MustMoney("40.10")) {
		t.Fatalf("price not updated: %+v", list)
	}
	if !list[0].UpdatedAt.Equal(at) {
		t.Fatalf("updated_at not set: %v", list[0].UpdatedAt)
	}

	if err := store.UpdatePrice(ctx, "NOPE", core.MustMoney("1"), at); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvestmentStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, err := NewInvestmentStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	older, err := core.NewInvestment("older", core.Fund, core.MustMoney("100"), core.MustMoney("100"),
		0.01, "u1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "")
	if err != nil {
		t.Fatal(err)
	}
	newer, err := core.NewInvestment("newer", core.Fund, core.MustMoney("200"), core.MustMoney("200"),
		0.01, "u1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, newer); err != nil {
		t.Fatal(err)
	}

	list, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "newer" || list[1].Name != "older" {
		t.Fatalf("expected newest position first, got %+v", list)
	}
}

func TestUserStoreUsernameUnique(t *testing.T) {
	ctx := context.Background()
	store, err := NewUserStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first, err := core.NewUser("kaiky", "kaiky@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, first); err != nil {
		t.Fatal(err)
	}

	// Same username with a different email, regardless of case.
	second, err := core.NewUser("Kaiky", "other@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, second); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := store.GetByUsername(ctx, "KAIKY")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != first.ID {
		t.Fatalf("lookup returned wrong user: %+v", got)
	}
	if _, err := store.GetByUsername(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
