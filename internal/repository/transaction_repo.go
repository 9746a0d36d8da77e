package repository

import (
	"context"

	"chat_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateWithTx appends a ledger entry using an existing database transaction.
// Entries are never updated or deleted afterwards.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.GoldTransaction) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO gold_transactions (user_id, amount, transaction_type, description, reference_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		tx.UserID, tx.Amount, tx.Type, tx.Description, tx.ReferenceID,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// GetByUserID returns recent ledger entries for a user
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.GoldTransaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount, transaction_type, description, reference_id, created_at
		 FROM gold_transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByUserIDAndType returns ledger entries filtered by type
func (r *TransactionRepository) GetByUserIDAndType(ctx context.Context, userID int64, txType domain.TransactionType, limit int) ([]*domain.GoldTransaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount, transaction_type, description, reference_id, created_at
		 FROM gold_transactions
		 WHERE user_id = $1 AND transaction_type = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3`,
		userID, txType, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumByUserID returns the signed sum of all ledger entries for a user.
// It must equal the user's gold_credits at all times.
func (r *TransactionRepository) SumByUserID(ctx context.Context, userID int64) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM gold_transactions WHERE user_id = $1`,
		userID,
	).Scan(&sum)
	return sum, err
}

func scanTransactions(rows pgx.Rows) ([]*domain.GoldTransaction, error) {
	var result []*domain.GoldTransaction
	for rows.Next() {
		var tx domain.GoldTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Description, &tx.ReferenceID, &tx.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &tx)
	}
	return result, rows.Err()
}
