// File: handlers/subscription.go
package handlers

import (
	"net/http"

	"futsal/models"
	"futsal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateSubscriptionHandler subscribes the authenticated client to a weekly
// slot, charging the first month up front.
func (h *HandlerBundle) CreateSubscriptionHandler(c *gin.Context) {
	logger := getLogger(c)

	clientID, phone, ok := clientIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var input struct {
		SlotID    string `json:"slotId" binding:"required"`
		StartDate string `json:"startDate" binding:"required"`
		WeeklyDay *int   `json:"weeklyDay" binding:"required"`
		Months    int    `json:"months"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if input.Months == 0 {
		input.Months = 1
	}

	result, err := h.SubscriptionSvc.Create(c.Request.Context(), clientID, phone,
		input.SlotID, input.StartDate, *input.WeeklyDay, input.Months)
	if err != nil {
		logger.Warn("Subscription rejected",
			zap.String("clientId", clientID),
			zap.String("slotId", input.SlotID),
			zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscription confirmed", "data": result})
}

// ListMySubscriptionsHandler returns the caller's subscriptions, optionally
// filtered by status.
func (h *HandlerBundle) ListMySubscriptionsHandler(c *gin.Context) {
	clientID, _, ok := clientIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	subs, err := h.SubscriptionSvc.ListForClient(c.Request.Context(), clientID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subs})
}

// CancelSubscriptionHandler cancels an active subscription the caller owns.
func (h *HandlerBundle) CancelSubscriptionHandler(c *gin.Context) {
	clientID, _, ok := clientIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	sub, err := h.SubscriptionSvc.Cancel(c.Request.Context(), c.Param("id"), clientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription cancelled", "data": sub})
}

// ListSubscriptionsHandler returns all subscriptions for the console
// (manager only).
func (h *HandlerBundle) ListSubscriptionsHandler(c *gin.Context) {
	subs, err := h.SubscriptionSvc.ListAll(c.Request.Context(), c.Query("status"), c.Query("search"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subs})
}

// CreateSubscriptionByManagerHandler records a front-desk subscription
// (manager only).
func (h *HandlerBundle) CreateSubscriptionByManagerHandler(c *gin.Context) {
	var input struct {
		ClientID  string `json:"clientId" binding:"required"`
		SlotID    string `json:"slotId" binding:"required"`
		StartDate string `json:"startDate" binding:"required"`
		WeeklyDay *int   `json:"weeklyDay" binding:"required"`
		Months    int    `json:"months"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if input.Months == 0 {
		input.Months = 1
	}

	result, err := h.SubscriptionSvc.CreateByManager(c.Request.Context(), input.ClientID,
		input.SlotID, input.StartDate, *input.WeeklyDay, input.Months)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscription recorded", "data": result})
}

// UpdateSubscriptionHandler applies a partial subscription update (manager only).
func (h *HandlerBundle) UpdateSubscriptionHandler(c *gin.Context) {
	var upd models.SubscriptionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	sub, err := h.SubscriptionSvc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription updated", "data": sub})
}

// DeleteSubscriptionHandler removes a subscription and its materialized
// bookings (manager only).
func (h *HandlerBundle) DeleteSubscriptionHandler(c *gin.Context) {
	removed, err := h.SubscriptionSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Subscription deleted",
		"data":    gin.H{"bookingsRemoved": removed},
	})
}
