// File: handlers/slot.go
package handlers

import (
	"net/http"

	"futsal/models"
	"futsal/utils"

	"github.com/gin-gonic/gin"
)

// ListSlotsHandler returns the slot catalog, annotated with booking status
// when a date is given.
func (h *HandlerBundle) ListSlotsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if date := c.Query("date"); date != "" {
		view, err := h.SlotSvc.ListForDate(ctx, date)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": view})
		return
	}

	slots, err := h.SlotSvc.List(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": slots})
}

// CreateSlotHandler adds a slot to the catalog (manager only).
func (h *HandlerBundle) CreateSlotHandler(c *gin.Context) {
	var input struct {
		StartTime string  `json:"startTime" binding:"required"`
		EndTime   string  `json:"endTime" binding:"required"`
		Price     float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	sl, err := h.SlotSvc.Create(c.Request.Context(), input.StartTime, input.EndTime, input.Price)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Slot created", "data": sl})
}

// UpdateSlotHandler applies a partial slot update (manager only).
func (h *HandlerBundle) UpdateSlotHandler(c *gin.Context) {
	var upd models.SlotUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	sl, err := h.SlotSvc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Slot updated", "data": sl})
}

// DeleteSlotHandler removes an unreferenced slot (manager only).
func (h *HandlerBundle) DeleteSlotHandler(c *gin.Context) {
	if err := h.SlotSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Slot deleted"})
}
