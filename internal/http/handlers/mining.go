package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MiningSites(c *gin.Context) {
	sites, err := h.Svc.Mining.Sites(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sites)
}

func (h *Handler) MiningStatus(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	status, err := h.Svc.Mining.Status(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

type startMiningRequest struct {
	SiteID int64 `json:"siteId" binding:"required"`
}

func (h *Handler) StartMining(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req startMiningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Mining site ID is required"})
		return
	}

	session, err := h.Svc.Mining.Start(c.Request.Context(), id, req.SiteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) CollectRewards(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	reward, err := h.Svc.Mining.Collect(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": reward})
}

func (h *Handler) StopMining(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.Svc.Mining.Stop(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mining session stopped"})
}
