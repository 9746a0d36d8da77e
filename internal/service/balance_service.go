package service

import (
	"context"
	"errors"

	"chat_app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// BalanceService handles gold balance reads and atomic adjustments.
// Every mutation happens inside a caller-owned transaction so the ledger
// row and the balance change always commit together.
type BalanceService struct {
	db              *pgxpool.Pool
	transactionRepo *repository.TransactionRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(db *pgxpool.Pool) *BalanceService {
	return &BalanceService{
		db:              db,
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// GetBalance returns user's current gold balance
func (s *BalanceService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `SELECT gold_credits FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

// DebitWithTx deducts amount within an existing transaction. The conditional
// update checks and deducts in one statement, so the balance can never go
// negative even under concurrent debits against the same user.
func (s *BalanceService) DebitWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount int64) (newBalance int64, err error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	err = tx.QueryRow(ctx,
		`UPDATE users SET gold_credits = gold_credits - $1 WHERE id = $2 AND gold_credits >= $1 RETURNING gold_credits`,
		amount, userID,
	).Scan(&newBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Could be not found or insufficient funds, check which
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrUserNotFound
			}
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}

	return newBalance, nil
}

// CreditWithTx adds amount within an existing transaction
func (s *BalanceService) CreditWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount int64) (newBalance int64, err error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	err = tx.QueryRow(ctx,
		`UPDATE users SET gold_credits = gold_credits + $1 WHERE id = $2 RETURNING gold_credits`,
		amount, userID,
	).Scan(&newBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	return newBalance, nil
}
