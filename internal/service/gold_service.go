package service

import (
	"context"
	"fmt"
	"time"

	"chat_app/internal/domain"
	"chat_app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GoldService orchestrates gold credit top-ups. Purchases are simulated:
// no payment gateway is involved, the reference id is an audit label only.
type GoldService struct {
	db              *pgxpool.Pool
	transactionRepo *repository.TransactionRepository
	balance         *BalanceService
}

// NewGoldService creates a new gold purchase service
func NewGoldService(db *pgxpool.Pool) *GoldService {
	return &GoldService{
		db:              db,
		transactionRepo: repository.NewTransactionRepository(db),
		balance:         NewBalanceService(db),
	}
}

// newPaymentReference builds a reference id from the user id and the clock.
// It is unique per (user, timestamp) pair and never used for deduplication:
// repeating the same reference still creates a new ledger entry.
func newPaymentReference(userID int64, now time.Time) string {
	return fmt.Sprintf("PAY-%d-%d", userID, now.UnixNano())
}

// Purchase credits the user with amount gold and appends the matching
// ledger entry in the same transaction, so the balance and the ledger can
// never diverge.
func (s *GoldService) Purchase(ctx context.Context, userID int64, amount int64, paymentReference *string) (*domain.GoldTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	ref := paymentReference
	if ref == nil || *ref == "" {
		generated := newPaymentReference(userID, time.Now())
		ref = &generated
	}

	entry := &domain.GoldTransaction{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.TransactionTypePurchase,
		Description: fmt.Sprintf("Gold purchase: %d credits", amount),
		ReferenceID: ref,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if _, err := s.balance.CreditWithTx(ctx, tx, userID, amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Grant credits the user with bonus gold (administrative)
func (s *GoldService) Grant(ctx context.Context, userID int64, amount int64, reason string) (*domain.GoldTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	entry := &domain.GoldTransaction{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.TransactionTypeBonus,
		Description: reason,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if _, err := s.balance.CreditWithTx(ctx, tx, userID, amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetBalance returns the user's current gold balance
func (s *GoldService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.balance.GetBalance(ctx, userID)
}

// ListHistory returns the user's recent ledger entries
func (s *GoldService) ListHistory(ctx context.Context, userID int64, limit int) ([]*domain.GoldTransaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}
