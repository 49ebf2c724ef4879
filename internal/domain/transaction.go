package domain

import "time"

type TransactionType string

const (
	TransactionDeposit TransactionType = "DEPOSIT"
	TransactionPayment TransactionType = "PAYMENT"
	TransactionRefund  TransactionType = "REFUND"
)

// Transaction is an append-only record of a monetary movement. Rows are never
// updated or deleted after insertion.
type Transaction struct {
	ID          int64
	UserID      int64
	Type        TransactionType
	Amount      int64
	Description string
	CreatedAt   time.Time
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionPayment, TransactionRefund:
		return true
	}
	return false
}
