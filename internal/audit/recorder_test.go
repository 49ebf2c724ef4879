package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestRecorder_Record(t *testing.T) {
	mockRepo := &MockAuditRepository{}
	recorder := NewRecorder(mockRepo, zap.NewNop())

	ctx := context.Background()
	userID := int64(7)

	mockRepo.On("Append", ctx, mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.UserID != nil && *e.UserID == 7 && e.Action == domain.AuditBooking && e.SourceIP == "10.0.0.1"
	})).Return(nil).Once()

	recorder.Record(ctx, &userID, domain.AuditBooking, "booked flight 4", "10.0.0.1")

	mockRepo.AssertExpectations(t)
}

func TestRecorder_Record_SwallowsErrors(t *testing.T) {
	mockRepo := &MockAuditRepository{}
	recorder := NewRecorder(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Append", ctx, mock.Anything).Return(errors.New("database down")).Once()

	// must not panic or surface the error
	recorder.Record(ctx, nil, domain.AuditFlightSearch, "origin=mos", "")

	mockRepo.AssertExpectations(t)
}

func TestRecorder_Record_NilRecorder(t *testing.T) {
	var recorder *Recorder
	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), nil, domain.AuditLogin, "", "")
	})
}
