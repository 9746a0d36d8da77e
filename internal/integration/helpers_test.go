package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"chat_app/internal/domain"
	"chat_app/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)

	_, err = db.Exec(context.Background(),
		`TRUNCATE room_participants, gold_transactions, audit_logs, rooms, users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func createUser(t *testing.T, db *pgxpool.Pool, username string, gold int64) *domain.User {
	t.Helper()
	repo := repository.NewUserRepository(db)
	u := &domain.User{Username: username, DisplayName: username, GoldCredits: gold}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func userGold(t *testing.T, db *pgxpool.Pool, userID int64) int64 {
	t.Helper()
	gold, err := repository.NewUserRepository(db).GetGold(context.Background(), userID)
	if err != nil {
		t.Fatalf("get gold: %v", err)
	}
	return gold
}

// checkLedgerMatchesBalance asserts the core bookkeeping invariant: the sum
// of a user's ledger entries always equals the stored balance.
func checkLedgerMatchesBalance(t *testing.T, db *pgxpool.Pool, userID int64, startingGold int64) {
	t.Helper()
	sum, err := repository.NewTransactionRepository(db).SumByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if got := userGold(t, db, userID); got != startingGold+sum {
		t.Fatalf("ledger out of sync: balance %d, starting %d + ledger sum %d", got, startingGold, sum)
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
