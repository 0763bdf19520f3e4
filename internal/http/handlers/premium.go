package handlers

import (
	"net/http"

	"mining_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

type subscribeRequest struct {
	Tier        string `json:"tier" binding:"required"`
	PaymentType string `json:"paymentType" binding:"required"`
}

func (h *Handler) Subscribe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tier and payment type are required"})
		return
	}

	sub, err := h.Svc.Premium.Subscribe(c.Request.Context(), id, domain.PremiumTier(req.Tier), req.PaymentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
