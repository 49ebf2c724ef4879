package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive   BookingStatus = "ACTIVE"
	BookingStatusCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID            int64
	Reference     string
	UserID        int64
	FlightID      int64
	Status        BookingStatus
	PricePaid     int64
	PenaltyAmount int64
	FinalRefund   int64
	CreatedAt     time.Time
	CanceledAt    *time.Time
}

func (b *Booking) IsCanceled() bool {
	return b.Status == BookingStatusCanceled
}

// PenaltyFor computes the cancellation penalty for a paid amount. Integer
// division truncates toward zero on purpose: a 10% penalty on 999 is 99.
func PenaltyFor(pricePaid int64, penaltyPercent int) int64 {
	return pricePaid * int64(penaltyPercent) / 100
}
