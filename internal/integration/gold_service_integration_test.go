package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"chat_app/internal/domain"
	"chat_app/internal/repository"
	"chat_app/internal/service"
)

func TestPurchaseGold(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer", 50)
	svc := service.NewGoldService(db)
	ctx := context.Background()

	tx, err := svc.Purchase(ctx, user.ID, 100, nil)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if tx.Amount != 100 || tx.Type != domain.TransactionTypePurchase {
		t.Errorf("transaction = %+v; want amount 100 type purchase", tx)
	}
	if tx.ReferenceID == nil {
		t.Fatal("reference id should be auto-generated")
	}
	if !strings.Contains(*tx.ReferenceID, fmt.Sprintf("%d", user.ID)) {
		t.Errorf("reference id %q should contain user id %d", *tx.ReferenceID, user.ID)
	}

	if got := userGold(t, db, user.ID); got != 150 {
		t.Errorf("balance = %d; want 150", got)
	}

	txs, _ := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, 10)
	if len(txs) != 1 {
		t.Errorf("transactions = %d; want 1", len(txs))
	}
	checkLedgerMatchesBalance(t, db, user.ID, 50)
}

// Repeating the same payment reference must not collapse purchases: the
// reference is an audit label, not an idempotency key.
func TestPurchaseGold_ReferenceNotDeduplicating(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "repeat", 0)
	svc := service.NewGoldService(db)
	ctx := context.Background()

	ref := "external-payment-1"
	if _, err := svc.Purchase(ctx, user.ID, 30, &ref); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if _, err := svc.Purchase(ctx, user.ID, 30, &ref); err != nil {
		t.Fatalf("second purchase: %v", err)
	}

	txs, _ := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, 10)
	if len(txs) != 2 {
		t.Errorf("transactions = %d; want 2", len(txs))
	}
	if got := userGold(t, db, user.ID); got != 60 {
		t.Errorf("balance = %d; want 60", got)
	}
}

func TestPurchaseGold_UserNotFound(t *testing.T) {
	db := setupDB(t)
	svc := service.NewGoldService(db)

	_, err := svc.Purchase(context.Background(), 9999, 100, nil)
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("err = %v; want ErrUserNotFound", err)
	}
}

func TestPurchaseGold_InvalidAmount(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "zero", 50)
	svc := service.NewGoldService(db)
	ctx := context.Background()

	for _, amount := range []int64{0, -10} {
		if _, err := svc.Purchase(ctx, user.ID, amount, nil); !errors.Is(err, service.ErrInvalidAmount) {
			t.Errorf("Purchase(%d) err = %v; want ErrInvalidAmount", amount, err)
		}
	}
	if got := userGold(t, db, user.ID); got != 50 {
		t.Errorf("balance = %d; want 50", got)
	}
}

func TestGrantGold(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "lucky", 10)
	svc := service.NewGoldService(db)
	ctx := context.Background()

	tx, err := svc.Grant(ctx, user.ID, 40, "welcome bonus")
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if tx.Type != domain.TransactionTypeBonus || tx.Amount != 40 {
		t.Errorf("transaction = %+v; want amount 40 type bonus", tx)
	}
	if got := userGold(t, db, user.ID); got != 50 {
		t.Errorf("balance = %d; want 50", got)
	}
}

// Concurrent purchases must all land and keep the ledger consistent.
func TestPurchaseGold_Concurrent(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "whale", 0)
	svc := service.NewGoldService(db)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(ctx, user.ID, 10, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Errorf("purchase failed: %v", err)
		}
	}

	if got := userGold(t, db, user.ID); got != n*10 {
		t.Errorf("balance = %d; want %d", got, n*10)
	}
	txs, _ := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, n+1)
	if len(txs) != n {
		t.Errorf("transactions = %d; want %d", len(txs), n)
	}
	checkLedgerMatchesBalance(t, db, user.ID, 0)
}
