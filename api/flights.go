package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/service/booking"
	"github.com/avdonin/skybooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	auditor booking.Auditor
}

type flightResponse struct {
	ID                   int64  `json:"id"`
	Origin               string `json:"origin"`
	Destination          string `json:"destination"`
	Airline              string `json:"airline"`
	PlaneType            string `json:"plane_type"`
	DepartureTime        string `json:"departure_time"`
	Price                int64  `json:"price"`
	SeatsTotal           int    `json:"seats_total"`
	SeatsAvailable       int    `json:"seats_available"`
	CancelPenaltyPercent int    `json:"cancel_penalty_percent"`
	IsAvailable          bool   `json:"is_available"`
}

func NewFlightHandler(service flights.FlightUseCase, auditor booking.Auditor) *FlightHandler {
	return &FlightHandler{service: service, auditor: auditor}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter := domain.FlightFilter{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.Date = date
	}

	result, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.auditor != nil {
		h.auditor.Record(c.Request.Context(), nil, domain.AuditFlightSearch,
			fmt.Sprintf("origin=%q destination=%q date=%q", filter.Origin, filter.Destination, c.Query("date")),
			c.ClientIP())
	}

	resp := make([]flightResponse, 0, len(result))
	for i := range result {
		resp = append(resp, toFlightResponse(&result[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:                   f.ID,
		Origin:               f.Origin,
		Destination:          f.Destination,
		Airline:              f.Airline,
		PlaneType:            f.PlaneType,
		DepartureTime:        f.DepartureTime.Format(time.RFC3339),
		Price:                f.Price,
		SeatsTotal:           f.SeatsTotal,
		SeatsAvailable:       f.SeatsAvailable,
		CancelPenaltyPercent: f.CancelPenaltyPercent,
		IsAvailable:          f.IsAvailable(),
	}
}
