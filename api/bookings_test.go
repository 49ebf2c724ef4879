package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, input booking.CancelBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{FlightID: 4})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("X-User-ID", "7")

	created := &domain.Booking{
		ID:        1,
		Reference: "ref-1",
		UserID:    7,
		FlightID:  4,
		Status:    domain.BookingStatusActive,
		PricePaid: 1000,
	}

	mockService.On("CreateBooking", mock.Anything, mock.MatchedBy(func(in booking.CreateBookingInput) bool {
		return in.UserID == 7 && in.FlightID == 4
	})).Return(created, nil).Once()

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ref-1", response.Reference)
	assert.Equal(t, string(domain.BookingStatusActive), response.Status)
	assert.Equal(t, int64(1000), response.PricePaid)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_missingUser(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{FlightID: 4})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))

	handler.create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking")
}

func TestBookingHandler_create_soldOut(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{FlightID: 4})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("X-User-ID", "7")

	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrSeatsUnavailable).Once()

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "21"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/21", nil)
	c.Request.Header.Set("X-User-ID", "7")

	canceled := &domain.Booking{
		ID:            21,
		Reference:     "ref-21",
		UserID:        7,
		FlightID:      4,
		Status:        domain.BookingStatusCanceled,
		PricePaid:     1000,
		PenaltyAmount: 100,
		FinalRefund:   900,
	}

	mockService.On("CancelBooking", mock.Anything, mock.MatchedBy(func(in booking.CancelBookingInput) bool {
		return in.UserID == 7 && in.BookingID == 21
	})).Return(canceled, nil).Once()

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCanceled), response.Status)
	assert.Equal(t, int64(100), response.PenaltyAmount)
	assert.Equal(t, int64(900), response.FinalRefund)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "21"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/21", nil)
	c.Request.Header.Set("X-User-ID", "8")

	mockService.On("CancelBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrForbidden).Once()

	handler.cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_cancel_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "404"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/404", nil)
	c.Request.Header.Set("X-User-ID", "7")

	mockService.On("CancelBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrBookingNotFound).Once()

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Request.Header.Set("X-User-ID", "7")

	bookings := []domain.Booking{
		{ID: 2, Reference: "ref-2", UserID: 7, Status: domain.BookingStatusActive},
		{ID: 1, Reference: "ref-1", UserID: 7, Status: domain.BookingStatusCanceled},
	}

	mockService.On("ListBookings", mock.Anything, int64(7)).Return(bookings, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "ref-2", response[0].Reference)

	mockService.AssertExpectations(t)
}
