package handlers

import (
	"errors"
	"net/http"

	"mining_webapp/internal/logger"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Svc *service.Services
}

func NewHandler(svc *service.Services) *Handler {
	return &Handler{Svc: svc}
}

// userID reads the acting user set by the identity middleware.
func userID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "invalid user id"})
		return 0, false
	}
	return id, true
}

// business rejections map to 400
var badRequestErrs = []error{
	service.ErrInsufficientFunds,
	service.ErrEquipmentLimit,
	service.ErrAlreadyRepaired,
	service.ErrNoActiveSession,
	service.ErrInsufficientPower,
	service.ErrWalletNotConnected,
	service.ErrInvalidAddress,
	service.ErrInvalidTier,
	service.ErrInvalidPayment,
	service.ErrInvalidAmount,
	service.ErrUsernameRequired,
	repository.ErrDuplicateUsername,
}

// respondError maps service errors to the API's status codes:
// 400 for business rejections, 403 for ownership and premium gating,
// 404 for missing records, 500 otherwise.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, service.ErrNotOwner), errors.Is(err, service.ErrPremiumRequired):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	default:
		for _, target := range badRequestErrs {
			if errors.Is(err, target) {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
		}
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
