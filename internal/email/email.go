package email

import (
	"context"

	"github.com/avdonin/skybooking/internal/kafka"
	"go.uber.org/zap"
)

// Sender is a notification stub: it logs what a real mailer would send.
// Delivery itself is out of scope.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("notify user",
		zap.Int64("user_id", event.UserID),
		zap.String("event", event.Type),
		zap.String("reference", event.Reference),
		zap.Int64("flight_id", event.FlightID),
	)
	return nil
}
