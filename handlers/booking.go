// File: handlers/booking.go
package handlers

import (
	"net/http"

	"futsal/models"
	"futsal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBookingHandler books a slot for the authenticated client, charging
// their mobile money account.
func (h *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	clientID, phone, ok := clientIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var input struct {
		SlotID string `json:"slotId" binding:"required"`
		Date   string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := h.BookingSvc.Create(c.Request.Context(), clientID, phone, input.SlotID, input.Date)
	if err != nil {
		logger.Warn("Booking rejected",
			zap.String("clientId", clientID),
			zap.String("slotId", input.SlotID),
			zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Booking confirmed", "data": result})
}

// ListMyBookingsHandler returns the caller's bookings, optionally filtered
// by status (upcoming|past|paid|pending).
func (h *HandlerBundle) ListMyBookingsHandler(c *gin.Context) {
	clientID, _, ok := clientIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	bookings, err := h.BookingSvc.ListForClient(c.Request.Context(), clientID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

// ListBookingsHandler returns all bookings for the console, optionally
// scoped to a date or a search term (manager only).
func (h *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.BookingSvc.ListAll(c.Request.Context(), c.Query("date"), c.Query("search"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

// CreateBookingByManagerHandler records a front-desk booking (manager only).
func (h *HandlerBundle) CreateBookingByManagerHandler(c *gin.Context) {
	var input struct {
		ClientID string `json:"clientId" binding:"required"`
		SlotID   string `json:"slotId" binding:"required"`
		Date     string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := h.BookingSvc.CreateByManager(c.Request.Context(), input.ClientID, input.SlotID, input.Date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Booking recorded", "data": result})
}

// UpdateBookingHandler applies a partial booking update (manager only).
func (h *HandlerBundle) UpdateBookingHandler(c *gin.Context) {
	var upd models.BookingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	b, err := h.BookingSvc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking updated", "data": b})
}

// DeleteBookingHandler removes a booking (manager only).
func (h *HandlerBundle) DeleteBookingHandler(c *gin.Context) {
	if err := h.BookingSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted"})
}
