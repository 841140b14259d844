package common

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextDeviceIDKey = "scorerDeviceID" // Device holding the scorer token
	ContextMatchIDKey  = "scorerMatchID"  // Match the scorer token was issued for
)

// GetDeviceIDFromContext retrieves the authenticated scorer device from the Gin context.
func GetDeviceIDFromContext(c *gin.Context) (string, error) {
	v, exists := c.Get(ContextDeviceIDKey)
	if !exists {
		return "", errors.New("device ID not found in context")
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", errors.New("device ID in context is not a non-empty string")
	}
	return id, nil
}

// GetMatchIDFromContext retrieves the match the scorer token grants access to.
func GetMatchIDFromContext(c *gin.Context) (string, error) {
	v, exists := c.Get(ContextMatchIDKey)
	if !exists {
		return "", errors.New("match ID not found in context")
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", errors.New("match ID in context is not a non-empty string")
	}
	return id, nil
}
