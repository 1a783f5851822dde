package utils

import (
	"errors"
	"net/http"

	"futsal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// ErrorStatus maps a domain error to its HTTP status.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrSlotNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrSubscriptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSlotExists),
		errors.Is(err, models.ErrSlotOverlap),
		errors.Is(err, models.ErrSlotTaken),
		errors.Is(err, models.ErrSubscriptionConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrSlotHasBookings),
		errors.Is(err, models.ErrSlotInUse),
		errors.Is(err, models.ErrInvalidTime),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, models.ErrPastDate),
		errors.Is(err, models.ErrInvalidWeekday):
		return http.StatusBadRequest
	}
	var payErr *models.PaymentError
	if errors.As(err, &payErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RespondError writes a domain error with its mapped status.
func RespondError(c *gin.Context, err error) {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		GetLogger().Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"success": false, "message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}
