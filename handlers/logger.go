package handlers

import (
	"futsal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the
// shared one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// clientIdentity pulls the authenticated caller's claims off the context.
func clientIdentity(c *gin.Context) (clientID, phone string, ok bool) {
	idVal, exists := c.Get("clientID")
	if !exists {
		return "", "", false
	}
	clientID, ok = idVal.(string)
	if !ok || clientID == "" {
		return "", "", false
	}
	if phoneVal, exists := c.Get("phone"); exists {
		phone, _ = phoneVal.(string)
	}
	return clientID, phone, true
}
