package api

import (
	"net/http"

	"github.com/Domenick1991/fleetops/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/fleet", h.fleet)
	router.POST("/operate", h.operate)
	router.GET("/balance", h.balance)
}

func (h *FlightHandler) fleet(c *gin.Context) {
	fleet, err := h.service.ListFleet(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fleet)
}

func (h *FlightHandler) operate(c *gin.Context) {
	var req flights.OperateFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.OperateFlight(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Flight simulation complete.",
		"departure":       report.Departure,
		"arrival":         report.Arrival,
		"passengers_to":   report.PassengersTo,
		"passengers_from": report.PassengersFrom,
		"earnings":        report.TotalEarnings,
	})
}

func (h *FlightHandler) balance(c *gin.Context) {
	amount, err := h.service.Balance(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}
