package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type connectWalletRequest struct {
	Address string `json:"address" binding:"required"`
}

func (h *Handler) ConnectWallet(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req connectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Wallet address is required"})
		return
	}

	user, err := h.Svc.Wallet.Connect(c.Request.Context(), id, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Wallet connected successfully",
		"user":    user,
	})
}
