package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID int64 `json:"flight_id"`
}

type bookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	FlightID      int64  `json:"flight_id"`
	Status        string `json:"status"`
	PricePaid     int64  `json:"price_paid"`
	PenaltyAmount int64  `json:"penalty_amount"`
	FinalRefund   int64  `json:"final_refund"`
	CreatedAt     string `json:"created_at"`
	CanceledAt    string `json:"canceled_at,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:   userID,
		FlightID: req.FlightID,
		SourceIP: c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	canceled, err := h.service.CancelBooking(c.Request.Context(), booking.CancelBookingInput{
		UserID:    userID,
		BookingID: id,
		SourceIP:  c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(canceled))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		FlightID:      b.FlightID,
		Status:        string(b.Status),
		PricePaid:     b.PricePaid,
		PenaltyAmount: b.PenaltyAmount,
		FinalRefund:   b.FinalRefund,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if b.CanceledAt != nil {
		resp.CanceledAt = b.CanceledAt.Format(time.RFC3339)
	}
	return resp
}
