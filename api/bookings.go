package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/fleetops/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type quoteRequest struct {
	Dep string `json:"dep_code"`
	Arv string `json:"arv_code"`
}

type cancelRequest struct {
	Cost          *float64 `json:"cost"`
	RefundPercent *float64 `json:"refund_percent"`
}

type bookingResponse struct {
	TicketID     int64   `json:"ticket_id"`
	Passenger    string  `json:"name"`
	Dep          string  `json:"dep"`
	Arv          string  `json:"arv"`
	DateOfFlight string  `json:"date_of_flight"`
	Cost         float64 `json:"cost"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/quote", h.quote)
	router.POST("/", h.book)
	router.GET("/", h.list)
	router.DELETE("/:ticket_id", h.cancel)
	router.POST("/reschedule", h.reschedule)
}

func (h *BookingHandler) quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), req.Dep, req.Arv)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departure":      quote.Dep,
		"arrival":        quote.Arv,
		"distance_miles": quote.DistanceMiles,
		"base_cost":      quote.BaseCost,
	})
}

func (h *BookingHandler) book(c *gin.Context) {
	var req booking.BookTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Booking successful!",
		"ticket_id": created.TicketID,
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, bookingResponse{
			TicketID:     b.TicketID,
			Passenger:    b.Passenger,
			Dep:          b.Dep,
			Arv:          b.Arv,
			DateOfFlight: b.DateOfFlight.Format(time.DateTime),
			Cost:         b.Cost,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	ticketID, err := strconv.ParseInt(c.Param("ticket_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	// Overrides are optional; an empty body means "use the stored values".
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), booking.CancelInput{
		TicketID:        ticketID,
		CostOverride:    req.Cost,
		PercentOverride: req.RefundPercent,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticket_id":      res.TicketID,
		"refund_percent": res.Percent,
		"refund_amount":  formatAmount(res.Amount),
	})
}

func (h *BookingHandler) reschedule(c *gin.Context) {
	var req booking.RescheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := h.service.RescheduleAll(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rescheduled": affected})
}

// formatAmount renders whole refunds without a fractional part.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
