// File: handlers/access.go
package handlers

import (
	"errors"
	"net/http"

	"futsal/models"
	"futsal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerifyAccessHandler runs the gate check for an OTP. Denials answer 400
// with their stable numeric code so gate hardware can branch on it.
func (h *HandlerBundle) VerifyAccessHandler(c *gin.Context) {
	logger := getLogger(c)

	var input struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	grant, err := h.AccessSvc.Verify(c.Request.Context(), input.OTP)
	if err != nil {
		var accessErr *models.AccessError
		if errors.As(err, &accessErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"code":    accessErr.Code,
				"message": accessErr.Message,
			})
			return
		}
		logger.Error("Access verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"code":    models.AccessCodeUnknown,
			"message": "internal server error",
		})
		return
	}

	resp := gin.H{"success": true, "code": grant.Code, "message": grant.Message}
	if grant.Detail != nil {
		resp["data"] = grant.Detail
	}
	c.JSON(http.StatusOK, resp)
}
