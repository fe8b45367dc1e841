package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/Domenick1991/fleetops/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Quote(ctx context.Context, dep, arv string) (*booking.QuoteResult, error) {
	args := m.Called(ctx, dep, arv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.QuoteResult), args.Error(1)
}

func (m *MockBookingUseCase) Book(ctx context.Context, input booking.BookTicketInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, input booking.CancelInput) (*booking.CancelResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CancelResult), args.Error(1)
}

func (m *MockBookingUseCase) RescheduleAll(ctx context.Context, input booking.RescheduleInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestBookingHandler_quote(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"dep_code": "VOCI", "arv_code": "MAAS"})
	c.Request = httptest.NewRequest("POST", "/bookings/quote", bytes.NewReader(body))

	mockService.On("Quote", c.Request.Context(), "VOCI", "MAAS").
		Return(&booking.QuoteResult{Dep: "VOCI", Arv: "MAAS", DistanceMiles: 341, BaseCost: 5115}, nil)

	handler.quote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "5115")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_quote_RangeExceeded(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"dep_code": "VOCI", "arv_code": "MAAS"})
	c.Request = httptest.NewRequest("POST", "/bookings/quote", bytes.NewReader(body))

	mockService.On("Quote", c.Request.Context(), "VOCI", "MAAS").
		Return(nil, domain.RangeExceeded("no available aircraft can reach this destination: route is 341 miles, fleet maximum is 300 miles"))

	handler.quote(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_WholeRefundHasNoFraction(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "ticket_id", Value: "42"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/42", nil)

	mockService.On("Cancel", c.Request.Context(), booking.CancelInput{TicketID: 42}).
		Return(&booking.CancelResult{TicketID: 42, Percent: 100, Amount: 5115}, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refund_amount":"5115"`)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "ticket_id", Value: "99"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/99", nil)

	mockService.On("Cancel", c.Request.Context(), booking.CancelInput{TicketID: 99}).
		Return(nil, domain.NotFound("booking 99 not found"))

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "5115", formatAmount(5115))
	assert.Equal(t, "262.5", formatAmount(262.5))
	assert.Equal(t, "0", formatAmount(0))
}
