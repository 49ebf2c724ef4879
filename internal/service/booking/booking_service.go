package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/kafka"
	"github.com/avdonin/skybooking/internal/metrics"
	"github.com/avdonin/skybooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, input CancelBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Auditor interface {
	Record(ctx context.Context, userID *int64, action domain.AuditAction, details, sourceIP string)
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	transactions       repository.TransactionRepository
	tx                 repository.Transactor
	cache              Cache
	producer           Producer
	auditor            Auditor
	log                *zap.Logger
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type CreateBookingInput struct {
	UserID   int64
	FlightID int64
	SourceIP string
}

type CancelBookingInput struct {
	UserID    int64
	BookingID int64
	SourceIP  string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source. Tests pin it to a fixed instant.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	transactions repository.TransactionRepository,
	tx repository.Transactor,
	cache Cache,
	producer Producer,
	auditor Auditor,
	log *zap.Logger,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		transactions: transactions,
		tx:           tx,
		cache:        cache,
		producer:     producer,
		auditor:      auditor,
		log:          log,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking takes one seat on the flight. Seat decrement, booking row and
// payment row commit as a single database transaction: concurrent calls racing
// for the last seat resolve inside ReserveSeat, so at most one can commit.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", domain.ErrInvalidInput)
	}
	if input.FlightID <= 0 {
		return nil, fmt.Errorf("%w: flight id must be positive", domain.ErrInvalidInput)
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference: uuid.NewString(),
		UserID:    input.UserID,
		FlightID:  flight.ID,
		Status:    domain.BookingStatusActive,
		PricePaid: flight.Price,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.flights.ReserveSeat(ctx, flight.ID); err != nil {
			return err
		}
		if err := s.bookings.Create(ctx, booking); err != nil {
			return err
		}
		return s.transactions.Record(ctx, &domain.Transaction{
			UserID:      input.UserID,
			Type:        domain.TransactionPayment,
			Amount:      booking.PricePaid,
			Description: fmt.Sprintf("payment for booking %s", booking.Reference),
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrSeatsUnavailable) {
			metrics.BookingsSoldOut.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.invalidateFlights(ctx)
	if s.auditor != nil {
		s.auditor.Record(ctx, &input.UserID, domain.AuditBooking,
			fmt.Sprintf("booked flight %d, reference %s", flight.ID, booking.Reference), input.SourceIP)
		s.auditor.Record(ctx, &input.UserID, domain.AuditPayment,
			fmt.Sprintf("paid %d for booking %s", booking.PricePaid, booking.Reference), input.SourceIP)
	}
	if err := s.publish(ctx, "booking_created", booking); err != nil {
		s.log.Warn("publish booking_created failed", zap.String("reference", booking.Reference), zap.Error(err))
	}
	return booking, nil
}

// CancelBooking is idempotent: cancelling a canceled booking returns the
// stored row unchanged and releases nothing.
func (s *BookingService) CancelBooking(ctx context.Context, input CancelBookingInput) (*domain.Booking, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", domain.ErrInvalidInput)
	}

	current, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	if current.IsCanceled() {
		return current, nil
	}

	flight, err := s.flights.GetByID(ctx, current.FlightID)
	if err != nil {
		return nil, err
	}

	penalty := domain.PenaltyFor(current.PricePaid, flight.CancelPenaltyPercent)
	refund := current.PricePaid - penalty
	canceledAt := s.now()

	var updated *domain.Booking
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.bookings.MarkCanceled(ctx, current.ID, penalty, refund, canceledAt)
		if err != nil {
			return err
		}
		released, err := s.flights.ReleaseSeat(ctx, current.FlightID)
		if err != nil {
			return err
		}
		if !released {
			// seats_available already at seats_total, e.g. after a capacity
			// edit. The cancellation itself still goes through.
			s.log.Warn("seat release skipped, flight at capacity", zap.Int64("flight_id", current.FlightID))
		}
		return s.transactions.Record(ctx, &domain.Transaction{
			UserID:      input.UserID,
			Type:        domain.TransactionRefund,
			Amount:      refund,
			Description: fmt.Sprintf("refund for booking %s, penalty %d", current.Reference, penalty),
		})
	})
	if err != nil {
		// The status guard on MarkCanceled lost a race with another cancel of
		// the same booking. Re-read and report the settled state.
		if errors.Is(err, domain.ErrBookingNotFound) {
			settled, readErr := s.bookings.GetByID(ctx, input.BookingID)
			if readErr == nil && settled.IsCanceled() {
				return settled, nil
			}
		}
		return nil, err
	}

	metrics.BookingsCanceled.Inc()
	s.invalidateFlights(ctx)
	if s.auditor != nil {
		s.auditor.Record(ctx, &input.UserID, domain.AuditCancel,
			fmt.Sprintf("canceled booking %s, penalty %d", updated.Reference, penalty), input.SourceIP)
		s.auditor.Record(ctx, &input.UserID, domain.AuditRefund,
			fmt.Sprintf("refunded %d for booking %s", refund, updated.Reference), input.SourceIP)
	}
	if err := s.publish(ctx, "booking_cancelled", updated); err != nil {
		s.log.Warn("publish booking_cancelled failed", zap.String("reference", updated.Reference), zap.Error(err))
	}
	return updated, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", domain.ErrInvalidInput)
	}
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("flight cache invalidation failed", zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		Reference: booking.Reference,
		UserID:    booking.UserID,
		FlightID:  booking.FlightID,
		Status:    string(booking.Status),
		Amount:    booking.PricePaid,
		Refund:    booking.FinalRefund,
		Penalty:   booking.PenaltyAmount,
		CreatedAt: booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
