package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MarketItems(c *gin.Context) {
	items, err := h.Svc.Market.Items(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type buyItemRequest struct {
	ItemID int64 `json:"itemId" binding:"required"`
}

func (h *Handler) BuyItem(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req buyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Item ID is required"})
		return
	}

	eq, err := h.Svc.Market.Buy(c.Request.Context(), id, req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// ListEquipment acknowledges a listing request. Creating real listings
// from the inventory never shipped in the original product either.
func (h *Handler) ListEquipment(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ready to list equipment"})
}
