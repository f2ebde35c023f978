package handlers

import (
	"errors"
	"net/http"

	"dinevoice/models"
	"dinevoice/services/booking"
	"dinevoice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the bookings REST API.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid booking payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.CreateBookingResponse{Success: false, Message: "invalid booking: " + err.Error()})
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		var verr booking.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, models.CreateBookingResponse{Success: false, Message: verr.Error()})
			return
		}
		logger.Error("Failed to create booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.CreateBookingResponse{Success: false})
		return
	}

	c.JSON(http.StatusOK, models.CreateBookingResponse{Success: true, Booking: created})
}

// ListBookings handles GET /api/bookings, newest first.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Service.ListBookings(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load bookings", err.Error())
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if errors.Is(err, booking.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to get booking", zap.String("bookingID", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	err := h.Service.DeleteBooking(c.Request.Context(), c.Param("id"))
	if errors.Is(err, booking.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to delete booking", zap.String("bookingID", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
