package domain

import "time"

// Route is an origin/destination city pair. Reference data, unique per pair.
type Route struct {
	ID          int64
	Origin      string
	Destination string
}

type Flight struct {
	ID                   int64
	RouteID              int64
	Origin               string
	Destination          string
	Airline              string
	PlaneType            string
	DepartureTime        time.Time
	Price                int64
	SeatsTotal           int
	SeatsAvailable       int
	CancelPenaltyPercent int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (f *Flight) IsAvailable() bool {
	return f.SeatsAvailable > 0
}

// FlightFilter holds optional search criteria. Zero values mean "no constraint".
type FlightFilter struct {
	Origin      string
	Destination string
	Date        time.Time
}

func (f FlightFilter) IsZero() bool {
	return f.Origin == "" && f.Destination == "" && f.Date.IsZero()
}
