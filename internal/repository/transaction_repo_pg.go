package repository

import (
	"context"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	Record(ctx context.Context, txn *domain.Transaction) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

type PGTransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &PGTransactionRepository{db: db}
}

// Record appends one row to the ledger. Joins the context transaction when
// present, so booking payments and refunds commit atomically with the booking.
func (r *PGTransactionRepository) Record(ctx context.Context, txn *domain.Transaction) error {
	return executorFrom(ctx, r.db).QueryRow(ctx, `
		INSERT INTO transactions (user_id, type, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		txn.UserID, txn.Type, txn.Amount, txn.Description).
		Scan(&txn.ID, &txn.CreatedAt)
}

func (r *PGTransactionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := executorFrom(ctx, r.db).Query(ctx, `
		SELECT id, user_id, type, amount, description, created_at
		FROM transactions WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

var _ TransactionRepository = (*PGTransactionRepository)(nil)
