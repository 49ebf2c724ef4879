package payments

import (
	"context"
	"fmt"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/repository"
)

type PaymentUseCase interface {
	Record(ctx context.Context, input RecordInput) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// PaymentService fronts the append-only transaction ledger. Booking payments
// and refunds are written by the booking service inside its own transaction;
// this path serves deposits and history reads.
type PaymentService struct {
	transactions repository.TransactionRepository
}

type RecordInput struct {
	UserID      int64
	Type        domain.TransactionType
	Amount      int64
	Description string
}

func NewPaymentService(transactions repository.TransactionRepository) *PaymentService {
	return &PaymentService{transactions: transactions}
}

func (s *PaymentService) Record(ctx context.Context, input RecordInput) (*domain.Transaction, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", domain.ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidInput, input.Type)
	}

	txn := &domain.Transaction{
		UserID:      input.UserID,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
	}
	if err := s.transactions.Record(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *PaymentService) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", domain.ErrInvalidInput)
	}
	return s.transactions.ListByUser(ctx, userID)
}

var _ PaymentUseCase = (*PaymentService)(nil)
