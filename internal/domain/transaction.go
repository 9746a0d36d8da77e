package domain

import "time"

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeSpend    TransactionType = "spend"
	TransactionTypeRefund   TransactionType = "refund"
	TransactionTypeBonus    TransactionType = "bonus"
)

// GoldTransaction is an append-only ledger entry. Amount is signed:
// positive credits the user, negative debits. ReferenceID is an opaque
// audit label (payment reference), never used for deduplication.
type GoldTransaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Amount      int64           `db:"amount" json:"amount"`
	Type        TransactionType `db:"transaction_type" json:"transaction_type"`
	Description string          `db:"description" json:"description"`
	ReferenceID *string         `db:"reference_id" json:"reference_id,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
