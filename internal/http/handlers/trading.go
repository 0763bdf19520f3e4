package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) TradingOffers(c *gin.Context) {
	offers, err := h.Svc.Trading.Offers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}
