package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindzy/internal/middleware"
	"mindzy/internal/services"
)

func deviceID(c *gin.Context) string {
	return c.GetString(middleware.DeviceIDKey)
}

// statusFor maps service sentinels to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidScreen),
		errors.Is(err, services.ErrTermsNotAccepted):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientCoins):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrRewardNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrCheckoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAwaitingResponse),
		errors.Is(err, services.ErrAlreadyPurchased),
		errors.Is(err, services.ErrPaymentInProgress),
		errors.Is(err, services.ErrNoEventSelected):
		return http.StatusConflict
	case errors.Is(err, services.ErrQuotaExhausted):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// respondErr logs err under tag and writes it; internal failures are not
// echoed to the client.
func respondErr(c *gin.Context, tag string, err error) {
	status := statusFor(err)
	log.Printf("%s[err] device=%s status=%d: %v", tag, deviceID(c), status, err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
