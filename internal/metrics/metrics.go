package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skybooking_bookings_created_total",
		Help: "The total number of bookings created",
	})
	BookingsCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skybooking_bookings_canceled_total",
		Help: "The total number of bookings canceled",
	})
	BookingsSoldOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skybooking_bookings_sold_out_total",
		Help: "The total number of booking attempts rejected for lack of seats",
	})
)
